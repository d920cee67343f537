package patricia

import "errors"

// Node is one decoded trie node.
type Node struct {
	// Pos is the node's byte offset; NotADictPos for the root pseudo node.
	Pos   int
	Flags uint8
	// CodePoints is the edge label leading to this node.
	CodePoints []rune
	// Probability is NotAProbability unless the node is terminal.
	Probability int
	// ChildrenPos is the position of the child node array, or NotADictPos.
	ChildrenPos int
	ShortcutPos int
	BigramsPos  int
	// NextPos is the position just past this node, where its next sibling
	// starts.
	NextPos int
	// Depth is the number of code points from the root through this label.
	Depth int
}

func (n Node) IsTerminal() bool {
	return n.Flags&FlagIsTerminal != 0
}

func (n Node) HasChildren() bool {
	return n.ChildrenPos != NotADictPos
}

func (n Node) HasShortcutTargets() bool {
	return n.Flags&FlagHasShortcutTargets != 0
}

func (n Node) HasBigrams() bool {
	return n.Flags&FlagHasBigrams != 0
}

func (n Node) IsNotAWord() bool {
	return n.Flags&FlagIsNotAWord != 0
}

func (n Node) IsBlacklisted() bool {
	return n.Flags&FlagIsBlacklisted != 0
}

// FirstCodePoint returns the leading code point of the label.
func (n Node) FirstCodePoint() rune {
	if len(n.CodePoints) == 0 {
		return -1
	}
	return n.CodePoints[0]
}

// readNode decodes the node at pos. parentDepth is added to the label
// length to fill Depth.
func readNode(buf []byte, pos int, parentDepth int) (Node, error) {
	n := Node{
		Pos:         pos,
		Probability: NotAProbability,
		ChildrenPos: NotADictPos,
		ShortcutPos: NotADictPos,
		BigramsPos:  NotADictPos,
	}
	c := cursor{buf: buf, pos: pos}

	flags, err := c.u8()
	if err != nil {
		return Node{}, corrupt(pos, err)
	}
	n.Flags = flags

	if flags&FlagHasMultipleChars != 0 {
		n.CodePoints, err = c.codePoints(nil)
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		if len(n.CodePoints) == 0 {
			return Node{}, corrupt(pos, errors.New("empty multi code point label"))
		}
	} else {
		cp, ok, err := c.codePoint()
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		if !ok {
			return Node{}, corrupt(pos, errors.New("unexpected code point terminator"))
		}
		n.CodePoints = []rune{cp}
	}
	n.Depth = parentDepth + len(n.CodePoints)

	if n.IsTerminal() {
		p, err := c.u8()
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		n.Probability = int(p)
	}

	if width := int(flags&FlagChildrenAddressTypeMask) >> childrenAddressTypeShift; width != 0 {
		fieldPos := c.pos
		off, err := c.uint(width)
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		if off == 0 || fieldPos+int(off) >= len(buf) {
			return Node{}, corrupt(pos, errors.New("children offset out of range"))
		}
		n.ChildrenPos = fieldPos + int(off)
	}

	if n.HasShortcutTargets() {
		n.ShortcutPos = c.pos
		size, err := shortcutListSize(buf, c.pos)
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		if err := c.skip(size); err != nil {
			return Node{}, corrupt(pos, err)
		}
	}

	if n.HasBigrams() {
		n.BigramsPos = c.pos
		end, err := skipBigrams(buf, c.pos)
		if err != nil {
			return Node{}, corrupt(pos, err)
		}
		c.pos = end
	}

	n.NextPos = c.pos
	return n, nil
}
