package probdict

import "errors"

// Field widths, in bytes.
const (
	FlagsBytes       = 1
	ProbabilityBytes = 1
	TimestampBytes   = 4
	LevelBytes       = 1
	CountBytes       = 1

	EntryBytes           = FlagsBytes + ProbabilityBytes
	HistoricalEntryBytes = EntryBytes + TimestampBytes + LevelBytes + CountBytes
)

const (
	// NotAProbability marks an entry without an assigned probability.
	NotAProbability = -1
	// NotATimestamp marks historical info that has never been stamped.
	NotATimestamp = -1

	// MaxProbability is the largest storable probability. The all-ones value
	// of the field is reserved for NotAProbability.
	MaxProbability = 1<<(8*ProbabilityBytes) - 2
)

// Flags carried in Entry.Flags.
const (
	FlagNotAWord    uint8 = 0x01
	FlagBlacklisted uint8 = 0x02
)

var (
	ErrNegativeTerminalID = errors.New("probdict: negative terminal id")
	ErrFieldRange         = errors.New("probdict: field value out of range")
	ErrBadFileSize        = errors.New("probdict: data size is not a multiple of the entry size")
	ErrBadSize            = errors.New("probdict: invalid table size")
	ErrTableInvalid       = errors.New("probdict: table is unusable after a failed gc")
	ErrGCFailed           = errors.New("probdict: gc failed")
	ErrGCSelf             = errors.New("probdict: gc source must be a different table")
)
