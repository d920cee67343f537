package header

import "errors"

const (
	// FixedBytesV1 is the size of the fixed part of a V1 header.
	FixedBytesV1 = 32

	MagicV1         = "PTD1"
	VersionV1 uint8 = 1

	// OptionHistoricalInfo marks dictionaries whose probability table carries
	// timestamp, level and count.
	OptionHistoricalInfo uint8 = 0x01
)

// Well known attribute keys.
const (
	AttrDictionaryID = "dictionary"
	AttrLocale       = "locale"
	AttrVersion      = "version"
	AttrDate         = "date"
)

var (
	ErrBadRegionSize = errors.New("header: region too small")
	ErrBadMagic      = errors.New("header: magic invalid")
	ErrBadVersion    = errors.New("header: version invalid")
	ErrBadOptions    = errors.New("header: unknown option bits")
	ErrBadSize       = errors.New("header: header size invalid")
	ErrBadAttributes = errors.New("header: attributes invalid")
)

type HeaderV1 struct {
	HasHistoricalInfo bool
	Attributes        map[string]string
}
