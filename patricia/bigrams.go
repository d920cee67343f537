package patricia

import (
	"errors"
	"iter"
)

// BigramEntry is one decoded bigram list entry.
type BigramEntry struct {
	// TargetPos is the node position of the second word.
	TargetPos   int
	Probability int
}

// BigramListPolicy decodes bigram lists from positions returned by
// Policy.BigramsPositionOfNode.
type BigramListPolicy struct {
	dictRoot []byte
}

func NewBigramListPolicy(dictRoot []byte) *BigramListPolicy {
	return &BigramListPolicy{dictRoot: dictRoot}
}

// Entries yields the bigrams of the list at pos in stored order.
func (b *BigramListPolicy) Entries(pos int) iter.Seq2[BigramEntry, error] {
	return func(yield func(BigramEntry, error) bool) {
		c := cursor{buf: b.dictRoot, pos: pos}
		for {
			e, hasNext, err := readBigram(&c)
			if err != nil {
				yield(BigramEntry{}, corrupt(pos, err))
				return
			}
			if !yield(e, nil) || !hasNext {
				return
			}
		}
	}
}

// SkipAllBigrams returns the position just past the list at pos.
func (b *BigramListPolicy) SkipAllBigrams(pos int) (int, error) {
	return skipBigrams(b.dictRoot, pos)
}

func skipBigrams(buf []byte, pos int) (int, error) {
	c := cursor{buf: buf, pos: pos}
	for {
		_, hasNext, err := readBigram(&c)
		if err != nil {
			return NotADictPos, corrupt(pos, err)
		}
		if !hasNext {
			return c.pos, nil
		}
	}
}

func readBigram(c *cursor) (BigramEntry, bool, error) {
	flags, err := c.u8()
	if err != nil {
		return BigramEntry{}, false, err
	}
	width := int(flags&FlagAttributeAddressTypeMask) >> attributeAddressTypeShift
	if width == 0 {
		return BigramEntry{}, false, errors.New("bigram without a target offset")
	}
	fieldPos := c.pos
	off, err := c.uint(width)
	if err != nil {
		return BigramEntry{}, false, err
	}
	target := fieldPos + int(off)
	if flags&FlagAttributeOffsetNegative != 0 {
		target = fieldPos - int(off)
	}
	if target < 0 || target >= len(c.buf) {
		return BigramEntry{}, false, errors.New("bigram target out of range")
	}
	e := BigramEntry{
		TargetPos:   target,
		Probability: int(flags & FlagAttributeProbabilityMask),
	}
	return e, flags&FlagAttributeHasNext != 0, nil
}
