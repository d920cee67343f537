package bloom

import "errors"

const (
	// HeaderBytesV1 is the fixed header size for HeaderV1.
	HeaderBytesV1 = 32

	MagicV1         = "WBF1"
	VersionV1 uint8 = 1

	// DomainWordsV1 is mixed into the second hash of every word. A region
	// written under another domain cannot be queried with this package.
	DomainWordsV1 uint8 = 0xB0

	// MaxK bounds the bits set per word.
	MaxK uint8 = 32

	// DefaultBitsPerElement and DefaultK give a false positive rate just
	// under 1%.
	DefaultBitsPerElement uint64 = 10
	DefaultK              uint8  = 7
)

var (
	ErrBadRegionSize  = errors.New("bloom: region buffer too small")
	ErrNotInitialized = errors.New("bloom: header not initialized")
	ErrFull           = errors.New("bloom: filter holds its capacity of words")

	ErrBadMagic    = errors.New("bloom: header magic invalid")
	ErrBadVersion  = errors.New("bloom: header version invalid")
	ErrBadDomain   = errors.New("bloom: header hash domain unsupported")
	ErrBadK        = errors.New("bloom: header k invalid")
	ErrBadCapacity = errors.New("bloom: header capacity invalid")
	ErrBadMBits    = errors.New("bloom: header mBits invalid")
	ErrBadCount    = errors.New("bloom: header inserted count exceeds capacity")

	ErrMBitsOverflow = errors.New("bloom: mBits overflows supported range")
)

// HeaderV1 describes a word filter region.
//
// Capacity is the word count the bitset was sized for. NInserted never
// exceeds it, so the false positive rate stays at the sizing target.
type HeaderV1 struct {
	Domain    uint8
	K         uint8
	Capacity  uint32
	MBits     uint32
	NInserted uint32
}
