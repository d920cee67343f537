package patricia

import (
	"errors"
	"fmt"
	"iter"
	"unicode"

	"github.com/datatrails/go-datatrails-common/logger"
)

// NodeFilter reports whether a decoded child should be left out of an
// enumeration. A nil filter keeps every child.
type NodeFilter func(n Node) bool

// LeadingCodePointFilter returns a filter that drops children whose first
// code point is rejected by accept.
func LeadingCodePointFilter(accept func(cp rune) bool) NodeFilter {
	return func(n Node) bool {
		return !accept(n.FirstCodePoint())
	}
}

// Policy is a read-only navigator over a packed trie body. It is safe for
// concurrent use; the body must not be modified while a Policy uses it.
type Policy struct {
	log       logger.Logger
	dictRoot  []byte
	bigrams   *BigramListPolicy
	shortcuts *ShortcutListPolicy
}

type Option func(*Policy)

func WithLogger(log logger.Logger) Option {
	return func(p *Policy) {
		p.log = log
	}
}

// NewPolicy returns a policy over dictRoot, the trie body whose first byte is
// the root node array.
func NewPolicy(dictRoot []byte, opts ...Option) *Policy {
	p := &Policy{
		log:       logger.Sugar,
		dictRoot:  dictRoot,
		bigrams:   NewBigramListPolicy(dictRoot),
		shortcuts: NewShortcutListPolicy(dictRoot),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// RootPosition returns the position of the root node array, which is always 0.
func (p *Policy) RootPosition() int {
	return 0
}

// RootNode returns a pseudo node whose children are the root node array.
func (p *Policy) RootNode() Node {
	return Node{
		Pos:         NotADictPos,
		Probability: NotAProbability,
		ChildrenPos: p.RootPosition(),
		ShortcutPos: NotADictPos,
		BigramsPos:  NotADictPos,
		NextPos:     NotADictPos,
	}
}

func (p *Policy) BigramsPolicy() *BigramListPolicy {
	return p.bigrams
}

func (p *Policy) ShortcutsPolicy() *ShortcutListPolicy {
	return p.shortcuts
}

// ReadNode decodes the node at pos. Depth is the label length only.
func (p *Policy) ReadNode(pos int) (Node, error) {
	return readNode(p.dictRoot, pos, 0)
}

// ChildNodes yields the children of parent in on-disk order, skipping those
// the filter rejects. Nothing is decoded until the sequence is ranged over,
// and each range starts afresh.
//
// A decode error is yielded once and ends the sequence.
func (p *Policy) ChildNodes(parent Node, filter NodeFilter) iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		if !parent.HasChildren() {
			return
		}
		c := cursor{buf: p.dictRoot, pos: parent.ChildrenPos}
		count, err := c.groupCount()
		if err != nil {
			yield(Node{}, p.corrupt("child nodes", corrupt(parent.ChildrenPos, err)))
			return
		}
		pos := c.pos
		for range count {
			n, err := readNode(p.dictRoot, pos, parent.Depth)
			if err != nil {
				yield(Node{}, p.corrupt("child nodes", err))
				return
			}
			pos = n.NextPos
			if filter != nil && filter(n) {
				continue
			}
			if !yield(n, nil) {
				return
			}
		}
	}
}

// AppendChildNodes appends the children of parent that pass filter to out.
func (p *Policy) AppendChildNodes(parent Node, filter NodeFilter, out []Node) ([]Node, error) {
	for n, err := range p.ChildNodes(parent, filter) {
		if err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, nil
}

// TerminalNodePositionOfWord returns the position of the terminal node
// spelling word, or NotADictPos if the dictionary does not contain it.
//
// With forceLowerCase each code point of word is lower cased before it is
// compared; the stored labels are compared as is.
func (p *Policy) TerminalNodePositionOfWord(word []rune, forceLowerCase bool) (int, error) {
	if len(word) == 0 {
		return NotADictPos, nil
	}
	search := func(i int) rune {
		if forceLowerCase {
			return unicode.ToLower(word[i])
		}
		return word[i]
	}

	pos := p.RootPosition()
	depth := 0
	for {
		c := cursor{buf: p.dictRoot, pos: pos}
		count, err := c.groupCount()
		if err != nil {
			return NotADictPos, p.corrupt("word lookup", corrupt(pos, err))
		}

		var matched *Node
		nodePos := c.pos
		for range count {
			n, err := readNode(p.dictRoot, nodePos, depth)
			if err != nil {
				return NotADictPos, p.corrupt("word lookup", err)
			}
			nodePos = n.NextPos
			if n.CodePoints[0] == search(depth) {
				matched = &n
				break
			}
		}
		if matched == nil {
			return NotADictPos, nil
		}

		if depth+len(matched.CodePoints) > len(word) {
			return NotADictPos, nil
		}
		for i := 1; i < len(matched.CodePoints); i++ {
			if matched.CodePoints[i] != search(depth+i) {
				return NotADictPos, nil
			}
		}
		depth += len(matched.CodePoints)

		if depth == len(word) {
			if matched.IsTerminal() {
				return matched.Pos, nil
			}
			return NotADictPos, nil
		}
		if !matched.HasChildren() {
			return NotADictPos, nil
		}
		pos = matched.ChildrenPos
	}
}

// CodePointsAndProbability recovers the word ending at terminalPos and its
// stored probability.
//
// There are no parent pointers, so the word is rebuilt by descending from the
// root: at each level the subtree holding terminalPos belongs to the last
// sibling whose children start at or before it.
func (p *Policy) CodePointsAndProbability(terminalPos int, maxCodePointCount int) ([]rune, int, error) {
	if terminalPos < 0 || terminalPos >= len(p.dictRoot) {
		return nil, NotAProbability, fmt.Errorf("%w: pos=%d, size=%d", ErrNotANode, terminalPos, len(p.dictRoot))
	}

	var out []rune
	pos := p.RootPosition()
	for {
		c := cursor{buf: p.dictRoot, pos: pos}
		count, err := c.groupCount()
		if err != nil {
			return nil, NotAProbability, p.corrupt("word decode", corrupt(pos, err))
		}

		var candidate *Node
		nodePos := c.pos
		for range count {
			n, err := readNode(p.dictRoot, nodePos, len(out))
			if err != nil {
				return nil, NotAProbability, p.corrupt("word decode", err)
			}
			nodePos = n.NextPos

			if n.Pos == terminalPos {
				if !n.IsTerminal() {
					return nil, NotAProbability, fmt.Errorf("%w: pos=%d", ErrNotTerminal, terminalPos)
				}
				if len(out)+len(n.CodePoints) > maxCodePointCount {
					return nil, NotAProbability, p.overflow(terminalPos, maxCodePointCount)
				}
				return append(out, n.CodePoints...), n.Probability, nil
			}
			if n.HasChildren() && n.ChildrenPos <= terminalPos {
				candidate = &n
			}
		}
		if candidate == nil {
			return nil, NotAProbability, fmt.Errorf("%w: pos=%d", ErrNotANode, terminalPos)
		}
		if len(out)+len(candidate.CodePoints) > maxCodePointCount {
			return nil, NotAProbability, p.overflow(terminalPos, maxCodePointCount)
		}
		out = append(out, candidate.CodePoints...)
		pos = candidate.ChildrenPos
	}
}

// UnigramProbability returns the probability stored on the node at nodePos,
// or NotAProbability if the node is not terminal.
func (p *Policy) UnigramProbability(nodePos int) (int, error) {
	n, err := p.readForAttribute("unigram probability", nodePos)
	if err != nil {
		return NotAProbability, err
	}
	return n.Probability, nil
}

// ShortcutPositionOfNode returns the position of the node's shortcut list, or
// NotADictPos if it has none.
func (p *Policy) ShortcutPositionOfNode(nodePos int) (int, error) {
	n, err := p.readForAttribute("shortcut position", nodePos)
	if err != nil {
		return NotADictPos, err
	}
	return n.ShortcutPos, nil
}

// BigramsPositionOfNode returns the position of the node's bigram list, or
// NotADictPos if it has none.
func (p *Policy) BigramsPositionOfNode(nodePos int) (int, error) {
	n, err := p.readForAttribute("bigrams position", nodePos)
	if err != nil {
		return NotADictPos, err
	}
	return n.BigramsPos, nil
}

func (p *Policy) readForAttribute(op string, nodePos int) (Node, error) {
	if nodePos == NotADictPos {
		return Node{}, fmt.Errorf("%w: %s", ErrNotANode, op)
	}
	n, err := readNode(p.dictRoot, nodePos, 0)
	if err != nil {
		return Node{}, p.corrupt(op, err)
	}
	return n, nil
}

func (p *Policy) corrupt(op string, err error) error {
	p.log.Infof("patricia: %s: %v", op, err)
	return err
}

func (p *Policy) overflow(pos int, capacity int) error {
	err := fmt.Errorf("%w: pos=%d, capacity=%d", ErrCodePointOverflow, pos, capacity)
	p.log.Infof("patricia: word decode: %v", err)
	return err
}

// IsCorrupt reports whether err came from a malformed dictionary.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}
