package patricia

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Shortcut is an alternate spelling attached to a word at build time.
type Shortcut struct {
	Target      string
	Probability int
}

// Bigram links a word to a following word at build time.
type Bigram struct {
	Target      string
	Probability int
}

// WordEntry is one word added to a Builder.
type WordEntry struct {
	Word        string
	Probability int
	NotAWord    bool
	Blacklisted bool
	Shortcuts   []Shortcut
	Bigrams     []Bigram
}

// Builder assembles a packed trie body from a set of words.
//
// Offsets are always written three bytes wide, which keeps every node's size
// independent of where it lands and lets Build lay out in a single pass
// before emitting.
type Builder struct {
	root  buildNode
	words map[string]*buildNode
}

type buildNode struct {
	label    []rune
	children []*buildNode
	terminal bool
	entry    WordEntry

	// assigned by layout
	pos         int
	childrenPos int
}

func NewBuilder() *Builder {
	return &Builder{words: map[string]*buildNode{}}
}

// Add inserts a word. Bigram targets are resolved by Build, so they may name
// words added later.
func (b *Builder) Add(e WordEntry) error {
	word, err := checkWord(e.Word)
	if err != nil {
		return err
	}
	if e.Probability < 0 || e.Probability > MaxProbability {
		return fmt.Errorf("%w: %q probability %d", ErrBadProbability, e.Word, e.Probability)
	}
	for _, s := range e.Shortcuts {
		if _, err := checkWord(s.Target); err != nil {
			return fmt.Errorf("shortcut of %q: %w", e.Word, err)
		}
		if s.Probability < 0 || s.Probability > MaxAttributeProbability {
			return fmt.Errorf("%w: shortcut %q of %q", ErrBadProbability, s.Target, e.Word)
		}
	}
	for _, bg := range e.Bigrams {
		if bg.Probability < 0 || bg.Probability > MaxAttributeProbability {
			return fmt.Errorf("%w: bigram %q of %q", ErrBadProbability, bg.Target, e.Word)
		}
	}
	if _, ok := b.words[e.Word]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateWord, e.Word)
	}

	n := b.root.insert(word)
	n.terminal = true
	n.entry = e
	b.words[e.Word] = n
	return nil
}

func checkWord(w string) ([]rune, error) {
	if w == "" {
		return nil, ErrEmptyWord
	}
	if !utf8.ValidString(w) {
		return nil, fmt.Errorf("%w: %q", ErrBadCodePoint, w)
	}
	word := []rune(w)
	if len(word) > MaxWordLength {
		return nil, fmt.Errorf("%w: %q", ErrWordTooLong, w)
	}
	return word, nil
}

// insert returns the node spelling word below n, splitting edges as needed.
func (n *buildNode) insert(word []rune) *buildNode {
	if len(word) == 0 {
		return n
	}
	i, found := slices.BinarySearchFunc(n.children, word[0], func(c *buildNode, cp rune) int {
		return int(c.label[0]) - int(cp)
	})
	if !found {
		child := &buildNode{label: slices.Clone(word)}
		n.children = slices.Insert(n.children, i, child)
		return child
	}

	child := n.children[i]
	common := commonPrefix(child.label, word)
	if common < len(child.label) {
		// Split child's edge at the divergence point.
		tail := &buildNode{
			label:    child.label[common:],
			children: child.children,
			terminal: child.terminal,
			entry:    child.entry,
		}
		mid := &buildNode{
			label:    child.label[:common:common],
			children: []*buildNode{tail},
		}
		n.children[i] = mid
		child = mid
	}
	return child.insert(word[common:])
}

func commonPrefix(a, b []rune) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// Build lays the trie out and returns the packed body.
func (b *Builder) Build() ([]byte, error) {
	// Splits move terminal entries between node values, so the word index is
	// rebuilt from the finished tree.
	b.words = map[string]*buildNode{}
	b.root.walk(func(n *buildNode) {
		if n.terminal {
			b.words[n.entry.Word] = n
		}
	})

	size, err := layoutGroup(b.root.children, 0)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	if err := b.emitGroup(out, b.root.children, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *buildNode) walk(f func(*buildNode)) {
	f(n)
	for _, c := range n.children {
		c.walk(f)
	}
}

func groupCountSize(count int) (int, error) {
	switch {
	case count < largeGroupCountFlag:
		return 1, nil
	case count <= MaxGroupCount:
		return 2, nil
	default:
		return 0, fmt.Errorf("%w: %d siblings", ErrTooLarge, count)
	}
}

func codePointSize(cp rune) int {
	if cp >= minimalOneByteCodePoint && cp <= 0xFF {
		return 1
	}
	return 3
}

func codePointsSize(cps []rune) int {
	size := 0
	for _, cp := range cps {
		size += codePointSize(cp)
	}
	return size
}

func (n *buildNode) size() int {
	size := 1 + codePointsSize(n.label)
	if len(n.label) > 1 {
		size++
	}
	if n.terminal {
		size++
	}
	if len(n.children) > 0 {
		size += 3
	}
	if n.terminal && len(n.entry.Shortcuts) > 0 {
		size += n.shortcutListSize()
	}
	if n.terminal && len(n.entry.Bigrams) > 0 {
		size += len(n.entry.Bigrams) * 4
	}
	return size
}

func (n *buildNode) shortcutListSize() int {
	size := shortcutListSizeBytes
	for _, s := range n.entry.Shortcuts {
		size += 1 + codePointsSize([]rune(s.Target)) + 1
	}
	return size
}

// layoutGroup assigns positions to a node array starting at pos and to all
// of its subtrees, depth first. It returns the position past the last byte.
func layoutGroup(nodes []*buildNode, pos int) (int, error) {
	countSize, err := groupCountSize(len(nodes))
	if err != nil {
		return 0, err
	}
	pos += countSize
	for _, n := range nodes {
		n.pos = pos
		pos += n.size()
	}
	for _, n := range nodes {
		n.childrenPos = NotADictPos
		if len(n.children) == 0 {
			continue
		}
		n.childrenPos = pos
		if pos, err = layoutGroup(n.children, pos); err != nil {
			return 0, err
		}
	}
	if pos > maxOffset {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, pos)
	}
	return pos, nil
}

func (b *Builder) emitGroup(out []byte, nodes []*buildNode, pos int) error {
	w := writer{buf: out, pos: pos}
	if len(nodes) < largeGroupCountFlag {
		w.u8(uint8(len(nodes)))
	} else {
		w.uint(uint32(len(nodes))|largeGroupCountFlag<<8, 2)
	}
	for _, n := range nodes {
		if w.pos != n.pos {
			return fmt.Errorf("patricia: layout drift at %d, expected %d", w.pos, n.pos)
		}
		if err := b.emitNode(&w, n); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		if len(n.children) == 0 {
			continue
		}
		if err := b.emitGroup(out, n.children, n.childrenPos); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) emitNode(w *writer, n *buildNode) error {
	var flags uint8
	if len(n.label) > 1 {
		flags |= FlagHasMultipleChars
	}
	if n.terminal {
		flags |= FlagIsTerminal
		if n.entry.NotAWord {
			flags |= FlagIsNotAWord
		}
		if n.entry.Blacklisted {
			flags |= FlagIsBlacklisted
		}
		if len(n.entry.Shortcuts) > 0 {
			flags |= FlagHasShortcutTargets
		}
		if len(n.entry.Bigrams) > 0 {
			flags |= FlagHasBigrams
		}
	}
	if len(n.children) > 0 {
		flags |= FlagChildrenAddressThreeBytes
	}
	w.u8(flags)

	w.codePoints(n.label, len(n.label) > 1)
	if n.terminal {
		w.u8(uint8(n.entry.Probability))
	}
	if len(n.children) > 0 {
		w.uint(uint32(n.childrenPos-w.pos), 3)
	}
	if !n.terminal {
		return nil
	}

	if len(n.entry.Shortcuts) > 0 {
		w.uint(uint32(n.shortcutListSize()), shortcutListSizeBytes)
		for i, s := range n.entry.Shortcuts {
			f := uint8(s.Probability)
			if i < len(n.entry.Shortcuts)-1 {
				f |= FlagAttributeHasNext
			}
			w.u8(f)
			w.codePoints([]rune(s.Target), true)
		}
	}

	for i, bg := range n.entry.Bigrams {
		target, ok := b.words[bg.Target]
		if !ok {
			return fmt.Errorf("%w: %q -> %q", ErrUnknownTarget, n.entry.Word, bg.Target)
		}
		f := uint8(bg.Probability) | 3<<attributeAddressTypeShift
		if i < len(n.entry.Bigrams)-1 {
			f |= FlagAttributeHasNext
		}
		off := target.pos - (w.pos + 1)
		if off < 0 {
			f |= FlagAttributeOffsetNegative
			off = -off
		}
		w.u8(f)
		w.uint(uint32(off), 3)
	}
	return nil
}

// writer emits into a buffer sized by layout, so writes never run past it.
type writer struct {
	buf []byte
	pos int
}

func (w *writer) u8(v uint8) {
	w.buf[w.pos] = v
	w.pos++
}

func (w *writer) uint(v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		w.buf[w.pos+i] = byte(v)
		v >>= 8
	}
	w.pos += width
}

func (w *writer) codePoints(cps []rune, terminate bool) {
	for _, cp := range cps {
		if codePointSize(cp) == 1 {
			w.u8(uint8(cp))
		} else {
			w.uint(uint32(cp), 3)
		}
	}
	if terminate {
		w.u8(codePointTerminator)
	}
}
