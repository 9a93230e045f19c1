package bytebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase64RoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		[]byte("Hello XISF"),
		{0xff, 0xfe, 0xfd, 0xfc, 0xfb},
	}

	for _, data := range tests {
		b := FromBytes(data)
		encoded := b.EncodeBase64()
		if len(data) > 0 {
			assert.Equal(t, 0, len(encoded)%4, "encoded length must be a multiple of 4")
		}

		decoded := DecodeBase64(encoded)
		assert.Equal(t, data, decoded.Bytes())
	}
}

func TestBase64Decode_TolerantOfWhitespaceAndPadding(t *testing.T) {
	b := DecodeBase64("SGVs bG8=")
	assert.Equal(t, []byte("Hello"), b.Bytes())
}

func TestBase64Decode_NoPaddingRequired(t *testing.T) {
	// "YQ" (2 chars, no padding) should still decode the leading byte.
	b := DecodeBase64("YQ")
	assert.Equal(t, []byte("a"), b.Bytes())
}

func TestBase64Encode_EmptyInput(t *testing.T) {
	b := New(0)
	assert.Equal(t, "", b.EncodeBase64())
}

func TestBase16RoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		[]byte("Hello XISF"),
	}

	for _, data := range tests {
		b := FromBytes(data)
		encoded := b.EncodeBase16()
		assert.Equal(t, len(data)*2, len(encoded))

		decoded := DecodeBase16(encoded)
		assert.Equal(t, data, decoded.Bytes())
	}
}

func TestBase16Decode_CaseInsensitive(t *testing.T) {
	lower := DecodeBase16("deadbeef")
	upper := DecodeBase16("DEADBEEF")
	mixed := DecodeBase16("DeAdBeEf")

	assert.Equal(t, lower.Bytes(), upper.Bytes())
	assert.Equal(t, lower.Bytes(), mixed.Bytes())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, lower.Bytes())
}

func TestBase16Decode_OddTrailingNibbleTruncated(t *testing.T) {
	b := DecodeBase16("dead0")
	assert.Equal(t, []byte{0xde, 0xad}, b.Bytes())
}

func TestBase16Encode_Lowercase(t *testing.T) {
	b := FromBytes([]byte{0xAB, 0xCD})
	assert.Equal(t, "abcd", b.EncodeBase16())
}
