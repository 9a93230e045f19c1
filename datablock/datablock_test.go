package datablock

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xisf-go/libxisf/bytebuf"
	"github.com/xisf-go/libxisf/compress"
)

func TestParseLocation_Embedded(t *testing.T) {
	loc, err := ParseLocation("embedded")
	require.NoError(t, err)
	assert.Equal(t, Embedded, loc.Kind)
	assert.Equal(t, "embedded", loc.String())
}

func TestParseLocation_Inline(t *testing.T) {
	loc, err := ParseLocation("inline:base64")
	require.NoError(t, err)
	assert.Equal(t, Inline, loc.Kind)
	assert.Equal(t, Base64, loc.Transport)
	assert.Equal(t, "inline:base64", loc.String())

	loc, err = ParseLocation("inline:base16")
	require.NoError(t, err)
	assert.Equal(t, Base16, loc.Transport)
}

func TestParseLocation_Attachment(t *testing.T) {
	loc, err := ParseLocation("attachment:4096:128")
	require.NoError(t, err)
	assert.Equal(t, Attachment, loc.Kind)
	assert.Equal(t, uint64(4096), loc.Pos)
	assert.Equal(t, uint64(128), loc.Size)
	assert.Equal(t, "attachment:4096:128", loc.String())
}

func TestParseLocation_Malformed(t *testing.T) {
	for _, bad := range []string{"", "inline", "inline:bogus", "attachment:1", "bogus:1:2"} {
		_, err := ParseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompressionAttr_RoundTrip(t *testing.T) {
	tests := []struct {
		text string
		want CompressionAttr
	}{
		{"zlib:1024", CompressionAttr{Codec: compress.Zlib, UncompressedSize: 1024}},
		{"lz4+sh:70:2", CompressionAttr{Codec: compress.LZ4, Shuffled: true, UncompressedSize: 70, ItemSize: 2}},
		{"zstd:8388608:2", CompressionAttr{}},
	}

	attr, err := ParseCompressionAttr(tests[0].text)
	require.NoError(t, err)
	assert.Equal(t, tests[0].want, attr)
	assert.Equal(t, tests[0].text, attr.String())

	attr, err = ParseCompressionAttr(tests[1].text)
	require.NoError(t, err)
	assert.Equal(t, tests[1].want, attr)
	assert.Equal(t, tests[1].text, attr.String())
}

func TestCompressionAttr_ShuffleRequiresItemSize(t *testing.T) {
	_, err := ParseCompressionAttr("lz4+sh:70")
	assert.Error(t, err)
}

func TestCompressionAttr_UnknownCodec(t *testing.T) {
	_, err := ParseCompressionAttr("bogus:10")
	assert.Error(t, err)
}

func TestSubBlocks_RoundTrip(t *testing.T) {
	blocks := []compress.SubBlock{{CompressedLen: 10, DecompressedLen: 100}, {CompressedLen: 20, DecompressedLen: 100}}
	text := FormatSubBlocks(blocks)
	assert.Equal(t, "10,100:20,100", text)

	parsed, err := ParseSubBlocks(text)
	require.NoError(t, err)
	assert.Equal(t, blocks, parsed)
}

func TestSubBlocks_Empty(t *testing.T) {
	parsed, err := ParseSubBlocks("")
	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestPrepareWriteAndReadPayload_NoCompressionNoShuffle(t *testing.T) {
	data := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(data)

	block := NewEmbedded(bytebuf.FromBytes(data))

	prepared, err := block.PrepareWrite(compress.None, compress.DefaultLevel, 0)
	require.NoError(t, err)
	assert.False(t, prepared.HasCompression)
	assert.Equal(t, data, prepared.Bytes)

	back, err := ReadPayload(prepared.Bytes, prepared.Compression, prepared.HasCompression, prepared.SubBlocks, 0)
	require.NoError(t, err)
	assert.Equal(t, data, back.Bytes())
}

func TestPrepareWriteAndReadPayload_ZlibWithShuffle(t *testing.T) {
	n := 2048
	data := make([]byte, n*2)
	rand.New(rand.NewSource(2)).Read(data)

	block := NewEmbedded(bytebuf.FromBytes(data))

	prepared, err := block.PrepareWrite(compress.Zlib, compress.DefaultLevel, 2)
	require.NoError(t, err)
	require.True(t, prepared.HasCompression)
	assert.True(t, prepared.Compression.Shuffled)
	assert.Equal(t, 2, prepared.Compression.ItemSize)

	back, err := ReadPayload(prepared.Bytes, prepared.Compression, true, prepared.SubBlocks, 2)
	require.NoError(t, err)
	assert.Equal(t, data, back.Bytes())
}

func TestTransportRoundTrip(t *testing.T) {
	data := []byte("round trip me")

	for _, tr := range []Transport{Base64, Base16} {
		encoded, err := EncodeTransport(tr, data)
		require.NoError(t, err)

		loc := InlineLocation(tr)
		decoded, err := DecodeTransport(loc, encoded)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

func TestReadAttachmentAndWriteChunked(t *testing.T) {
	data := make([]byte, 5000)
	rand.New(rand.NewSource(3)).Read(data)

	var buf bytes.Buffer
	require.NoError(t, WriteChunked(&buf, data))
	assert.Equal(t, data, buf.Bytes())

	back, err := ReadAttachment(bytes.NewReader(buf.Bytes()), 0, uint64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestPrepareWrite_RequiresResidentData(t *testing.T) {
	block := &DataBlock{}
	_, err := block.PrepareWrite(compress.None, compress.DefaultLevel, 0)
	assert.Error(t, err)
}
