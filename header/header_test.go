package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderV1RoundTrip(t *testing.T) {
	h := HeaderV1{
		HasHistoricalInfo: true,
		Attributes: map[string]string{
			AttrDictionaryID: "main:en_US",
			AttrLocale:       "en_US",
			AttrVersion:      "54",
		},
	}
	hdr, err := EncodeV1(h)
	require.NoError(t, err)
	require.Equal(t, MagicV1, string(hdr[0:4]))

	body := []byte{0x01, 0x10, 0x61}
	blob := append(hdr, body...)

	got, gotBody, ok, err := DecodeV1(blob)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, h, got)
	require.Equal(t, body, gotBody)
}

func TestHeaderV1EncodingIsDeterministic(t *testing.T) {
	attrs := map[string]string{"b": "2", "a": "1", "c": "3"}
	a, err := EncodeV1(HeaderV1{Attributes: attrs})
	require.NoError(t, err)
	b, err := EncodeV1(HeaderV1{Attributes: map[string]string{"c": "3", "a": "1", "b": "2"}})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestHeaderV1NilAttributes(t *testing.T) {
	hdr, err := EncodeV1(HeaderV1{})
	require.NoError(t, err)

	got, body, ok, err := DecodeV1(hdr)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, got.HasHistoricalInfo)
	require.Empty(t, got.Attributes)
	require.Empty(t, body)
}

func TestDecodeHeaderV1Rejections(t *testing.T) {
	good, err := EncodeV1(HeaderV1{Attributes: map[string]string{"k": "v"}})
	require.NoError(t, err)

	_, _, _, err = DecodeV1(good[:FixedBytesV1-1])
	require.ErrorIs(t, err, ErrBadRegionSize)

	_, _, ok, err := DecodeV1(make([]byte, FixedBytesV1))
	require.NoError(t, err)
	require.False(t, ok)

	mutate := func(f func(b []byte)) []byte {
		b := append([]byte(nil), good...)
		f(b)
		return b
	}

	_, _, _, err = DecodeV1(mutate(func(b []byte) { b[0] = 'X' }))
	require.ErrorIs(t, err, ErrBadMagic)

	_, _, _, err = DecodeV1(mutate(func(b []byte) { b[4] = 9 }))
	require.ErrorIs(t, err, ErrBadVersion)

	_, _, _, err = DecodeV1(mutate(func(b []byte) { b[5] = 0x80 }))
	require.ErrorIs(t, err, ErrBadOptions)

	_, _, _, err = DecodeV1(mutate(func(b []byte) { b[11]++ }))
	require.ErrorIs(t, err, ErrBadSize)

	_, _, _, err = DecodeV1(good[:len(good)-1])
	require.ErrorIs(t, err, ErrBadSize)

	_, _, _, err = DecodeV1(mutate(func(b []byte) { b[FixedBytesV1] = 0xFF }))
	require.ErrorIs(t, err, ErrBadAttributes)
}
