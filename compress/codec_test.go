package compress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCodecs() []Type {
	return []Type{None, Zlib, LZ4, LZ4HC, Zstd}
}

func TestRoundTrip_AllCodecs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	sizes := []int{0, 1, 65, 4096, 1 << 20}

	for _, typ := range allCodecs() {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := Get(typ)
			require.NoError(t, err)

			for _, size := range sizes {
				data := make([]byte, size)
				rng.Read(data)

				compressed, subBlocks, err := codec.Compress(data, DefaultLevel)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed, size, subBlocks)
				require.NoError(t, err)

				if size == 0 {
					// Codecs return a nil slice for empty input, which
					// assert.Equal tells apart from data's empty slice.
					assert.Empty(t, decompressed, "size=%d", size)

					continue
				}

				assert.Equal(t, data, decompressed, "size=%d", size)
			}
		})
	}
}

func TestZlib_SubBlocking(t *testing.T) {
	oldMax := zlibMaxInput
	zlibMaxInput = 100
	defer func() { zlibMaxInput = oldMax }()

	codec := zlibCodec{}
	data := make([]byte, 1000)
	rand.New(rand.NewSource(1)).Read(data)

	compressed, subBlocks, err := codec.Compress(data, DefaultLevel)
	require.NoError(t, err)
	require.NotEmpty(t, subBlocks)
	assert.Greater(t, len(subBlocks), 1)

	var total uint64
	for _, sb := range subBlocks {
		total += sb.DecompressedLen
	}
	assert.Equal(t, uint64(len(data)), total)

	decompressed, err := codec.Decompress(compressed, len(data), subBlocks)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestLZ4_SubBlocking(t *testing.T) {
	oldMax := lz4MaxInput
	lz4MaxInput = 100
	defer func() { lz4MaxInput = oldMax }()

	codec := lz4Codec{}
	data := make([]byte, 1000)
	rand.New(rand.NewSource(2)).Read(data)

	compressed, subBlocks, err := codec.Compress(data, DefaultLevel)
	require.NoError(t, err)
	require.Greater(t, len(subBlocks), 1)

	decompressed, err := codec.Decompress(compressed, len(data), subBlocks)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestDecompress_AcceptsSingleChunkWithoutSubBlockList(t *testing.T) {
	for _, typ := range []Type{Zlib, LZ4, LZ4HC} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := Get(typ)
			require.NoError(t, err)

			data := []byte("round trip without explicit sub-blocks")
			compressed, _, err := codec.Compress(data, DefaultLevel)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed, len(data), nil)
			require.NoError(t, err)
			assert.Equal(t, data, decompressed)
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"zlib", Zlib, true},
		{"lz4", LZ4, true},
		{"lz4hc", LZ4HC, true},
		{"zstd", Zstd, true},
		{"bogus", None, false},
	}

	for _, tt := range tests {
		got, ok := ParseType(tt.name)
		assert.Equal(t, tt.ok, ok)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestNoneCodecIsIdentity(t *testing.T) {
	data := []byte("hello xisf")
	codec := noneCodec{}

	out, subBlocks, err := codec.Compress(data, DefaultLevel)
	require.NoError(t, err)
	assert.Nil(t, subBlocks)
	assert.Equal(t, data, out)

	back, err := codec.Decompress(out, len(data), nil)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}
