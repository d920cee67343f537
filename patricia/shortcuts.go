package patricia

import (
	"errors"
	"fmt"
	"iter"
)

// ShortcutTarget is one decoded shortcut list entry.
type ShortcutTarget struct {
	CodePoints  []rune
	Probability int
}

// IsWhitelist reports whether the shortcut is a whitelisted correction.
func (s ShortcutTarget) IsWhitelist() bool {
	return s.Probability == ShortcutWhitelistProbability
}

// ShortcutListPolicy decodes shortcut lists from positions returned by
// Policy.ShortcutPositionOfNode.
type ShortcutListPolicy struct {
	dictRoot []byte
}

func NewShortcutListPolicy(dictRoot []byte) *ShortcutListPolicy {
	return &ShortcutListPolicy{dictRoot: dictRoot}
}

// ListSize returns the byte size of the list at pos, including its size field.
func (s *ShortcutListPolicy) ListSize(pos int) (int, error) {
	return shortcutListSize(s.dictRoot, pos)
}

// Targets yields the entries of the shortcut list at pos in stored order.
func (s *ShortcutListPolicy) Targets(pos int) iter.Seq2[ShortcutTarget, error] {
	return func(yield func(ShortcutTarget, error) bool) {
		size, err := shortcutListSize(s.dictRoot, pos)
		if err != nil {
			yield(ShortcutTarget{}, err)
			return
		}
		end := pos + size
		c := cursor{buf: s.dictRoot[:end], pos: pos + shortcutListSizeBytes}
		for c.pos < end {
			flags, err := c.u8()
			if err != nil {
				yield(ShortcutTarget{}, corrupt(pos, err))
				return
			}
			cps, err := c.codePoints(nil)
			if err != nil {
				yield(ShortcutTarget{}, corrupt(pos, err))
				return
			}
			t := ShortcutTarget{
				CodePoints:  cps,
				Probability: int(flags & FlagAttributeProbabilityMask),
			}
			if !yield(t, nil) {
				return
			}
			if flags&FlagAttributeHasNext == 0 {
				return
			}
		}
		yield(ShortcutTarget{}, corrupt(pos, errors.New("shortcut list ends before its last entry")))
	}
}

func shortcutListSize(buf []byte, pos int) (int, error) {
	c := cursor{buf: buf, pos: pos}
	size, err := c.uint(shortcutListSizeBytes)
	if err != nil {
		return 0, corrupt(pos, err)
	}
	if size < shortcutListSizeBytes || pos+int(size) > len(buf) {
		return 0, corrupt(pos, fmt.Errorf("shortcut list size %d out of range", size))
	}
	return int(size), nil
}
