package probdict

import (
	"fmt"

	"github.com/forestrie/go-wordtrie/extbuf"
)

// encodeSentinel maps a non-negative value, or -1, onto a field of width
// bytes. -1 is stored as the all-ones value of the field.
func encodeSentinel(v int, width int) (uint32, error) {
	allOnes := extbuf.MaxValue(width)
	if v == -1 {
		return allOnes, nil
	}
	if v < 0 || uint64(v) >= uint64(allOnes) {
		return 0, fmt.Errorf("%w: value=%d, width=%d", ErrFieldRange, v, width)
	}
	return uint32(v), nil
}

func decodeSentinel(raw uint32, width int) int {
	if raw == extbuf.MaxValue(width) {
		return -1
	}
	return int(raw)
}

func encodePlain(v int, width int) (uint32, error) {
	if v < 0 || uint64(v) > uint64(extbuf.MaxValue(width)) {
		return 0, fmt.Errorf("%w: value=%d, width=%d", ErrFieldRange, v, width)
	}
	return uint32(v), nil
}

// field is one encoded value with its width, in record order.
type field struct {
	v     uint32
	width int
}

// encodeEntry validates e and returns its fields in on-disk order.
func encodeEntry(e Entry, historical bool) ([]field, error) {
	prob, err := encodeSentinel(e.Probability, ProbabilityBytes)
	if err != nil {
		return nil, fmt.Errorf("probability: %w", err)
	}
	fields := []field{
		{uint32(e.Flags), FlagsBytes},
		{prob, ProbabilityBytes},
	}
	if !historical {
		return fields, nil
	}

	ts, err := encodeSentinel(e.Historical.Timestamp, TimestampBytes)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	level, err := encodePlain(e.Historical.Level, LevelBytes)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	count, err := encodePlain(e.Historical.Count, CountBytes)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	return append(fields,
		field{ts, TimestampBytes},
		field{level, LevelBytes},
		field{count, CountBytes},
	), nil
}

// decodeEntry reads the record starting at pos.
func decodeEntry(buf *extbuf.Buffer, pos int, historical bool) (Entry, error) {
	flags, err := buf.ReadUintAndAdvance(FlagsBytes, &pos)
	if err != nil {
		return Entry{}, err
	}
	prob, err := buf.ReadUintAndAdvance(ProbabilityBytes, &pos)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Flags:       uint8(flags),
		Probability: decodeSentinel(prob, ProbabilityBytes),
		Historical:  DefaultHistoricalInfo(),
	}
	if !historical {
		return e, nil
	}

	ts, err := buf.ReadUintAndAdvance(TimestampBytes, &pos)
	if err != nil {
		return Entry{}, err
	}
	level, err := buf.ReadUintAndAdvance(LevelBytes, &pos)
	if err != nil {
		return Entry{}, err
	}
	count, err := buf.ReadUintAndAdvance(CountBytes, &pos)
	if err != nil {
		return Entry{}, err
	}
	e.Historical = HistoricalInfo{
		Timestamp: decodeSentinel(ts, TimestampBytes),
		Level:     int(level),
		Count:     int(count),
	}
	return e, nil
}
