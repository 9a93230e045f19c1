package xenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xisf-go/libxisf/compress"
)

func TestCodecOverride_Unset(t *testing.T) {
	resetForTest()

	_, ok := CodecOverride()
	assert.False(t, ok)
}

func TestCodecOverride_Valid(t *testing.T) {
	resetForTest()
	t.Setenv(compressionEnvVar, "zstd")

	got, ok := CodecOverride()
	assert.True(t, ok)
	assert.Equal(t, compress.Zstd, got)
}

func TestCodecOverride_Invalid(t *testing.T) {
	resetForTest()
	t.Setenv(compressionEnvVar, "not-a-codec")

	_, ok := CodecOverride()
	assert.False(t, ok)
}

func TestCodecOverride_CachedAfterFirstCall(t *testing.T) {
	resetForTest()
	t.Setenv(compressionEnvVar, "lz4")

	got, ok := CodecOverride()
	assert.True(t, ok)
	assert.Equal(t, compress.LZ4, got)

	t.Setenv(compressionEnvVar, "zlib")

	got, ok = CodecOverride()
	assert.True(t, ok)
	assert.Equal(t, compress.LZ4, got, "second call must not re-read the environment")
}
