package extbuf

import "fmt"

// ReadUint reads a big-endian unsigned field of width bytes at pos.
//
// Every read in this module that touches stored bytes goes through here, so
// that no decode can step past the end of b.
func ReadUint(b []byte, width int, pos int) (uint32, error) {
	if width < 1 || width > MaxFieldWidth {
		return 0, ErrBadWidth
	}
	if pos < 0 {
		return 0, ErrNegativePosition
	}
	if pos > len(b)-width {
		return 0, fmt.Errorf("%w: pos=%d, width=%d, size=%d", ErrOutOfBounds, pos, width, len(b))
	}
	var v uint32
	for _, c := range b[pos : pos+width] {
		v = v<<8 | uint32(c)
	}
	return v, nil
}

// ReadUintAndAdvance reads a field at *pos and advances *pos by width on success.
func ReadUintAndAdvance(b []byte, width int, pos *int) (uint32, error) {
	v, err := ReadUint(b, width, *pos)
	if err != nil {
		return 0, err
	}
	*pos += width
	return v, nil
}

// FitsWidth reports whether v can be stored in width bytes.
func FitsWidth(v uint32, width int) bool {
	if width >= MaxFieldWidth {
		return true
	}
	return v>>(8*uint(width)) == 0
}

// MaxValue returns the all-ones value for a field of width bytes.
func MaxValue(width int) uint32 {
	if width >= MaxFieldWidth {
		return ^uint32(0)
	}
	return (uint32(1) << (8 * uint(width))) - 1
}

func putUint(dst []byte, v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}
