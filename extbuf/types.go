package extbuf

import "errors"

const (
	// MaxFieldWidth is the widest unsigned field supported by ReadUint and WriteUint.
	MaxFieldWidth = 4

	// DefaultMaxExtension is the default growth budget beyond the initial content.
	DefaultMaxExtension = 1024 * 1024
)

var (
	ErrBadWidth         = errors.New("extbuf: field width must be in [1,4]")
	ErrNegativePosition = errors.New("extbuf: negative position")
	ErrOutOfBounds      = errors.New("extbuf: read out of bounds")
	ErrExtendLimit      = errors.New("extbuf: extension exceeds the configured limit")
	ErrValueTooLarge    = errors.New("extbuf: value does not fit the field width")
)
