package patricia

import (
	"fmt"

	"github.com/forestrie/go-wordtrie/extbuf"
)

// cursor is a forward reader over the dictionary body. All reads are
// checked by extbuf.ReadUint.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) uint(width int) (uint32, error) {
	return extbuf.ReadUintAndAdvance(c.buf, width, &c.pos)
}

func (c *cursor) u8() (uint8, error) {
	v, err := c.uint(1)
	return uint8(v), err
}

// codePoint reads one code point. ok=false means the array terminator was read.
func (c *cursor) codePoint() (cp rune, ok bool, err error) {
	b, err := c.u8()
	if err != nil {
		return 0, false, err
	}
	if b >= minimalOneByteCodePoint {
		return rune(b), true, nil
	}
	if b == codePointTerminator {
		return 0, false, nil
	}
	lo, err := c.uint(2)
	if err != nil {
		return 0, false, err
	}
	return rune(uint32(b)<<16 | lo), true, nil
}

// codePoints reads a terminated code point array.
func (c *cursor) codePoints(out []rune) ([]rune, error) {
	for n := 0; ; n++ {
		cp, ok, err := c.codePoint()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		if n >= MaxWordLength {
			return nil, fmt.Errorf("label longer than %d code points", MaxWordLength)
		}
		out = append(out, cp)
	}
}

// groupCount reads a node array count.
func (c *cursor) groupCount() (int, error) {
	b, err := c.u8()
	if err != nil {
		return 0, err
	}
	if b&largeGroupCountFlag == 0 {
		return int(b), nil
	}
	lo, err := c.u8()
	if err != nil {
		return 0, err
	}
	return int(b&^largeGroupCountFlag)<<8 | int(lo), nil
}

// skip advances by n bytes, refusing to step past the end.
func (c *cursor) skip(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return fmt.Errorf("%w: skip %d at %d, size %d", extbuf.ErrOutOfBounds, n, c.pos, len(c.buf))
	}
	c.pos += n
	return nil
}

func corrupt(pos int, err error) error {
	return fmt.Errorf("%w: pos=%d: %w", ErrCorrupt, pos, err)
}
