package bloom

import (
	"github.com/cespare/xxhash/v2"
)

// NewRegionV1 allocates and initializes a region sized for capacity words.
func NewRegionV1(capacity uint64, bitsPerWord uint64, k uint8) ([]byte, error) {
	layout, err := SizeV1(capacity, bitsPerWord)
	if err != nil {
		return nil, err
	}
	region := make([]byte, layout.RegionBytes)
	if err := InitV1(region, capacity, bitsPerWord, k); err != nil {
		return nil, err
	}
	return region, nil
}

// InitV1 writes a HeaderV1 and an empty bitset into region, which must hold
// at least SizeV1(capacity, bitsPerWord).RegionBytes.
func InitV1(region []byte, capacity uint64, bitsPerWord uint64, k uint8) error {
	layout, err := SizeV1(capacity, bitsPerWord)
	if err != nil {
		return err
	}
	if len(region) < layout.RegionBytes {
		return ErrBadRegionSize
	}

	// Ensure clean initialization even if region is reused.
	clear(region[:layout.RegionBytes])

	return EncodeHeaderV1(region, HeaderV1{
		Domain:   DomainWordsV1,
		K:        k,
		Capacity: uint32(capacity),
		MBits:    layout.MBits,
	})
}

// InsertV1 inserts word and increments NInserted in the header. It fails
// with ErrFull once Capacity words have been inserted.
func InsertV1(region []byte, word []byte) error {
	h, bitset, err := openV1(region)
	if err != nil {
		return err
	}
	if h.NInserted >= h.Capacity {
		return ErrFull
	}

	h1, h2 := hashPairV1(h.Domain, word)
	setBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2)

	h.NInserted++
	return EncodeHeaderV1(region, h)
}

// MaybeContainsV1 checks membership for word.
//
// Returns (false,nil) if the filter says "definitely not present".
// Returns (true,nil) if the filter says "maybe present".
func MaybeContainsV1(region []byte, word []byte) (bool, error) {
	h, bitset, err := openV1(region)
	if err != nil {
		return false, err
	}
	h1, h2 := hashPairV1(h.Domain, word)
	return testBitsLSB0(bitset, uint64(h.MBits), h.K, h1, h2), nil
}

func openV1(region []byte) (HeaderV1, []byte, error) {
	h, ok, err := DecodeHeaderV1(region)
	if err != nil {
		return HeaderV1{}, nil, err
	}
	if !ok {
		return HeaderV1{}, nil, ErrNotInitialized
	}
	return h, region[HeaderBytesV1:layoutV1(h.MBits).RegionBytes], nil
}

func hashPairV1(domain uint8, word []byte) (h1 uint64, h2 uint64) {
	h1 = xxhash.Sum64(word)

	d := xxhash.New()
	_, _ = d.Write([]byte{domain})
	_, _ = d.Write(word)
	// odd, so successive bit indexes never repeat before mBits when mBits is a
	// power of two
	h2 = d.Sum64() | 1
	return h1, h2
}

func setBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		bitset[byteIdx] |= (1 << bit)
	}
}

func testBitsLSB0(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) bool {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		byteIdx := j >> 3
		bit := uint8(j & 7)
		if (bitset[byteIdx] & (1 << bit)) == 0 {
			return false
		}
	}
	return true
}
