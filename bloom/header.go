package bloom

// Header layout, big endian:
//
//	[0:4]   magic
//	[4]     version
//	[5]     hash domain
//	[6]     k
//	[7]     zero
//	[8:12]  capacity
//	[12:16] mBits
//	[16:20] inserted count
//	[20:32] zero

// DecodeHeaderV1 decodes the header of a word filter region and checks that
// region holds the whole bitset.
//
// ok=false means the region is zero filled and has never been initialized.
func DecodeHeaderV1(region []byte) (h HeaderV1, ok bool, err error) {
	if len(region) < HeaderBytesV1 {
		return HeaderV1{}, false, ErrBadRegionSize
	}
	if readU32BE(region[0:4]) == 0 {
		return HeaderV1{}, false, nil
	}
	if string(region[0:4]) != MagicV1 {
		return HeaderV1{}, false, ErrBadMagic
	}
	if region[4] != VersionV1 {
		return HeaderV1{}, false, ErrBadVersion
	}

	h = HeaderV1{
		Domain:    region[5],
		K:         region[6],
		Capacity:  readU32BE(region[8:12]),
		MBits:     readU32BE(region[12:16]),
		NInserted: readU32BE(region[16:20]),
	}
	if err := h.check(); err != nil {
		return HeaderV1{}, false, err
	}
	if len(region) < layoutV1(h.MBits).RegionBytes {
		return HeaderV1{}, false, ErrBadRegionSize
	}
	return h, true, nil
}

// EncodeHeaderV1 writes h into the first HeaderBytesV1 bytes of region.
func EncodeHeaderV1(region []byte, h HeaderV1) error {
	if len(region) < HeaderBytesV1 {
		return ErrBadRegionSize
	}
	if err := h.check(); err != nil {
		return err
	}

	copy(region[0:4], MagicV1)
	region[4] = VersionV1
	region[5] = h.Domain
	region[6] = h.K
	region[7] = 0
	writeU32BE(region[8:12], h.Capacity)
	writeU32BE(region[12:16], h.MBits)
	writeU32BE(region[16:20], h.NInserted)
	clear(region[20:HeaderBytesV1])
	return nil
}

func (h HeaderV1) check() error {
	switch {
	case h.Domain != DomainWordsV1:
		return ErrBadDomain
	case h.K == 0 || h.K > MaxK:
		return ErrBadK
	case h.Capacity == 0:
		return ErrBadCapacity
	// At least one bit per word.
	case h.MBits < h.Capacity:
		return ErrBadMBits
	case h.NInserted > h.Capacity:
		return ErrBadCount
	}
	return nil
}
