package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// EncodeV1 returns the serialized header. The trie body is appended by the
// caller.
func EncodeV1(h HeaderV1) ([]byte, error) {
	attrs := h.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrData, err := encMode.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAttributes, err)
	}

	out := make([]byte, FixedBytesV1+len(attrData))
	copy(out[0:4], []byte(MagicV1))
	out[4] = VersionV1
	if h.HasHistoricalInfo {
		out[5] |= OptionHistoricalInfo
	}
	binary.BigEndian.PutUint32(out[8:12], uint32(len(out)))
	binary.BigEndian.PutUint32(out[12:16], uint32(len(attrData)))
	copy(out[FixedBytesV1:], attrData)
	return out, nil
}

// DecodeV1 decodes the header at the start of blob and returns it along with
// the trie body that follows.
//
// ok=false indicates the region is zero-filled / uninitialized.
func DecodeV1(blob []byte) (h HeaderV1, body []byte, ok bool, err error) {
	if len(blob) < FixedBytesV1 {
		return HeaderV1{}, nil, false, ErrBadRegionSize
	}
	if bytes.Equal(blob[0:4], []byte{0, 0, 0, 0}) {
		return HeaderV1{}, nil, false, nil
	}
	if string(blob[0:4]) != MagicV1 {
		return HeaderV1{}, nil, false, ErrBadMagic
	}
	if blob[4] != VersionV1 {
		return HeaderV1{}, nil, false, ErrBadVersion
	}
	if blob[5]&^OptionHistoricalInfo != 0 {
		return HeaderV1{}, nil, false, ErrBadOptions
	}

	headerBytes := uint64(binary.BigEndian.Uint32(blob[8:12]))
	attrBytes := uint64(binary.BigEndian.Uint32(blob[12:16]))
	if headerBytes != FixedBytesV1+attrBytes || headerBytes > uint64(len(blob)) {
		return HeaderV1{}, nil, false, fmt.Errorf(
			"%w: header=%d, attributes=%d, blob=%d", ErrBadSize, headerBytes, attrBytes, len(blob))
	}

	h.HasHistoricalInfo = blob[5]&OptionHistoricalInfo != 0
	if err := cbor.Unmarshal(blob[FixedBytesV1:headerBytes], &h.Attributes); err != nil {
		return HeaderV1{}, nil, false, fmt.Errorf("%w: %v", ErrBadAttributes, err)
	}
	return h, blob[headerBytes:], true, nil
}
