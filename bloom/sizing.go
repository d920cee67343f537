package bloom

import (
	"math"
	"math/bits"
)

// LayoutV1 gives the sizes of a word filter region.
type LayoutV1 struct {
	MBits       uint32
	BitsetBytes int
	RegionBytes int
}

// SizeV1 returns the layout of a filter for capacity words at bitsPerWord
// bits each. The bitset is addressed with 32 bit indexes, so capacity *
// bitsPerWord must fit a uint32.
func SizeV1(capacity, bitsPerWord uint64) (LayoutV1, error) {
	if capacity == 0 {
		return LayoutV1{}, ErrBadCapacity
	}
	if bitsPerWord == 0 {
		return LayoutV1{}, ErrBadMBits
	}
	hi, mBits := bits.Mul64(capacity, bitsPerWord)
	if hi != 0 || mBits > math.MaxUint32 {
		return LayoutV1{}, ErrMBitsOverflow
	}
	return layoutV1(uint32(mBits)), nil
}

func layoutV1(mBits uint32) LayoutV1 {
	bitset := int((uint64(mBits) + 7) / 8)
	return LayoutV1{MBits: mBits, BitsetBytes: bitset, RegionBytes: HeaderBytesV1 + bitset}
}
