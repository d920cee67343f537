package extbuf

import "fmt"

// Buffer is a growable byte region with checked fixed width field access.
type Buffer struct {
	data    []byte
	tail    int
	maxSize int
}

type Option func(*Buffer)

// WithMaxExtension bounds growth to n bytes beyond the initial content.
func WithMaxExtension(n int) Option {
	return func(b *Buffer) {
		b.maxSize = len(b.data) + n
	}
}

// New returns an empty buffer.
func New(opts ...Option) *Buffer {
	return NewFromBytes(nil, opts...)
}

// NewFromBytes returns a buffer whose initial content is a copy of data. The
// tail position is len(data).
func NewFromBytes(data []byte, opts ...Option) *Buffer {
	b := &Buffer{
		data: append([]byte(nil), data...),
		tail: len(data),
	}
	b.maxSize = len(b.data) + DefaultMaxExtension
	for _, o := range opts {
		o(b)
	}
	return b
}

// TailPosition returns the first offset past all written bytes.
func (b *Buffer) TailPosition() int {
	return b.tail
}

// Bytes returns the written region. The slice aliases the buffer and is only
// valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.tail]
}

// ReadUint reads a field of width bytes at pos.
func (b *Buffer) ReadUint(width int, pos int) (uint32, error) {
	return ReadUint(b.data[:b.tail], width, pos)
}

// ReadUintAndAdvance reads a field at *pos and advances *pos on success.
func (b *Buffer) ReadUintAndAdvance(width int, pos *int) (uint32, error) {
	return ReadUintAndAdvance(b.data[:b.tail], width, pos)
}

// WriteUint writes v as a big-endian field of width bytes at pos, extending
// the buffer if the field ends past the tail.
func (b *Buffer) WriteUint(v uint32, width int, pos int) error {
	if width < 1 || width > MaxFieldWidth {
		return ErrBadWidth
	}
	if pos < 0 {
		return ErrNegativePosition
	}
	if !FitsWidth(v, width) {
		return fmt.Errorf("%w: value=%d, width=%d", ErrValueTooLarge, v, width)
	}
	end := pos + width
	if err := b.extend(end); err != nil {
		return err
	}
	putUint(b.data[pos:end], v, width)
	return nil
}

// WriteUintAndAdvance writes a field at *pos and advances *pos on success.
func (b *Buffer) WriteUintAndAdvance(v uint32, width int, pos *int) error {
	if err := b.WriteUint(v, width, *pos); err != nil {
		return err
	}
	*pos += width
	return nil
}

// Ensure grows the buffer so that [0, end) is addressable. It either succeeds
// or leaves the buffer unchanged, letting callers reserve a whole record
// before writing its fields.
func (b *Buffer) Ensure(end int) error {
	if end < 0 {
		return ErrNegativePosition
	}
	return b.extend(end)
}

// extend makes [0, end) addressable and moves the tail to cover it.
func (b *Buffer) extend(end int) error {
	if end <= b.tail {
		return nil
	}
	if end > b.maxSize {
		return fmt.Errorf("%w: end=%d, max=%d", ErrExtendLimit, end, b.maxSize)
	}
	if end > len(b.data) {
		if end <= cap(b.data) {
			b.data = b.data[:end]
		} else {
			grown := make([]byte, end, max(end, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		}
	}
	// Bytes past the old tail may hold data from before a Reset.
	clear(b.data[b.tail:end])
	b.tail = end
	return nil
}

// Reset discards the content while keeping the allocation and growth budget.
func (b *Buffer) Reset() {
	b.tail = 0
	b.data = b.data[:0]
}
