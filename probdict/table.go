package probdict

import (
	"fmt"
	"iter"
	"math"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-wordtrie/extbuf"
)

// Table is a dense, randomly addressable array of probability records keyed
// by terminal id.
//
// A Table is not safe for concurrent use. Callers serialize writers and
// exclude readers while writing.
type Table struct {
	log               logger.Logger
	buf               *extbuf.Buffer
	bufOpts           []extbuf.Option
	size              int
	hasHistoricalInfo bool
	invalid           bool
}

type Option func(*Table)

func WithLogger(log logger.Logger) Option {
	return func(t *Table) {
		t.log = log
	}
}

// WithMaxExtension bounds how many bytes the table may grow by.
func WithMaxExtension(n int) Option {
	return func(t *Table) {
		t.bufOpts = append(t.bufOpts, extbuf.WithMaxExtension(n))
	}
}

// NewTable returns an empty table.
func NewTable(hasHistoricalInfo bool, opts ...Option) *Table {
	t := newTable(hasHistoricalInfo, opts)
	t.buf = extbuf.New(t.bufOpts...)
	return t
}

// LoadTable returns a table over a copy of data, which must hold a whole
// number of records.
func LoadTable(data []byte, hasHistoricalInfo bool, opts ...Option) (*Table, error) {
	t := newTable(hasHistoricalInfo, opts)
	if len(data)%t.EntrySize() != 0 {
		return nil, fmt.Errorf("%w: size=%d, entry=%d", ErrBadFileSize, len(data), t.EntrySize())
	}
	t.buf = extbuf.NewFromBytes(data, t.bufOpts...)
	t.size = len(data) / t.EntrySize()
	return t, nil
}

func newTable(hasHistoricalInfo bool, opts []Option) *Table {
	t := &Table{
		log:               logger.Sugar,
		hasHistoricalInfo: hasHistoricalInfo,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Size returns the number of valid records.
func (t *Table) Size() int {
	return t.size
}

// HasHistoricalInfo reports whether records carry timestamp, level and count.
func (t *Table) HasHistoricalInfo() bool {
	return t.hasHistoricalInfo
}

// EntrySize returns the fixed record width in bytes.
func (t *Table) EntrySize() int {
	if t.hasHistoricalInfo {
		return HistoricalEntryBytes
	}
	return EntryBytes
}

// EntryPos returns the byte offset of the record for terminalID.
func (t *Table) EntryPos(terminalID int) int {
	return terminalID * t.EntrySize()
}

// TailPosition returns the first byte offset past the backing buffer content.
// It exceeds EntryPos(Size()) when stale records trail the table.
func (t *Table) TailPosition() int {
	return t.buf.TailPosition()
}

// Get returns the record for terminalID, or DefaultEntry when terminalID is
// outside [0, Size()). GC queries ids that are mid removal, so out of range
// is not an error.
func (t *Table) Get(terminalID int) Entry {
	e, _ := t.Lookup(terminalID)
	return e
}

// Lookup is Get with an explicit presence result.
func (t *Table) Lookup(terminalID int) (Entry, bool) {
	if terminalID < 0 || terminalID >= t.size {
		return DefaultEntry(), false
	}
	e, err := decodeEntry(t.buf, t.EntryPos(terminalID), t.hasHistoricalInfo)
	if err != nil {
		t.log.Infof("probdict: cannot read entry: id=%d, size=%d: %v", terminalID, t.size, err)
		return DefaultEntry(), false
	}
	return e, true
}

// All yields every valid record in terminal id order.
func (t *Table) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for id := 0; id < t.size; id++ {
			if !yield(id, t.Get(id)) {
				return
			}
		}
	}
}

// Set writes e as the record for terminalID.
//
// If terminalID >= Size(), every record from Size() up to terminalID-1 is
// written as DefaultEntry and the size becomes terminalID+1. On error the
// table is unchanged.
func (t *Table) Set(terminalID int, e Entry) error {
	if t.invalid {
		return ErrTableInvalid
	}
	if terminalID < 0 {
		t.log.Infof("probdict: cannot set entry: negative terminal id %d", terminalID)
		return fmt.Errorf("%w: %d", ErrNegativeTerminalID, terminalID)
	}
	fields, err := encodeEntry(e, t.hasHistoricalInfo)
	if err != nil {
		t.log.Infof("probdict: cannot set entry: id=%d: %v", terminalID, err)
		return err
	}

	if terminalID > math.MaxInt/t.EntrySize()-1 {
		t.log.Infof("probdict: cannot set entry: terminal id %d out of range", terminalID)
		return fmt.Errorf("%w: terminal id %d", ErrFieldRange, terminalID)
	}

	if terminalID >= t.size {
		// Reserve everything up front so that a failed extension cannot
		// leave a half filled gap behind.
		if err := t.buf.Ensure(t.EntryPos(terminalID + 1)); err != nil {
			t.log.Infof("probdict: cannot extend table: id=%d, size=%d: %v", terminalID, t.size, err)
			return err
		}
		dummy, _ := encodeEntry(DefaultEntry(), t.hasHistoricalInfo)
		for t.size < terminalID {
			if err := t.writeFields(dummy, t.EntryPos(t.size)); err != nil {
				t.log.Infof("probdict: cannot write dummy entry: pos=%d, size=%d: %v", t.EntryPos(t.size), t.size, err)
				return err
			}
			t.size++
		}
		t.size = terminalID + 1
	}
	if err := t.writeFields(fields, t.EntryPos(terminalID)); err != nil {
		t.log.Infof("probdict: cannot write entry: id=%d: %v", terminalID, err)
		return err
	}
	return nil
}

func (t *Table) writeFields(fields []field, pos int) error {
	for _, f := range fields {
		if err := t.buf.WriteUintAndAdvance(f.v, f.width, &pos); err != nil {
			return err
		}
	}
	return nil
}

// Truncate shrinks the logical size. The bytes of the dropped records stay
// in the buffer until the next flush compacts them away.
func (t *Table) Truncate(size int) error {
	if size < 0 || size > t.size {
		return fmt.Errorf("%w: want=%d, have=%d", ErrBadSize, size, t.size)
	}
	t.size = size
	return nil
}
