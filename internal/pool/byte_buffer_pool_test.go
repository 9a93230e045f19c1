package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_ResetPreservesCapacity(t *testing.T) {
	bb := NewByteBuffer(CodecBufferDefaultSize)
	bb.Write([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(CodecBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(CodecBufferDefaultSize)
	bb.Write([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(CodecBufferDefaultSize)
	bb.SetLength(CodecBufferDefaultSize)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), CodecBufferDefaultSize+1024)
	assert.Equal(t, CodecBufferDefaultSize, len(bb.B))
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(CodecBufferDefaultSize)
	testData := []byte("important data that must be preserved")
	bb.Write(testData)

	bb.Grow(CodecBufferDefaultSize * 2)

	assert.Equal(t, testData, bb.Bytes())
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(10000)
	assert.Greater(t, cap(bb.B), 4096)

	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2)
}

func TestGetPutCodecBuffer_Reuse(t *testing.T) {
	bb := GetCodecBuffer()
	bb.Write([]byte("test data"))

	PutCodecBuffer(bb)

	bb2 := GetCodecBuffer()
	assert.Equal(t, 0, len(bb2.Bytes()))
	PutCodecBuffer(bb2)
}

func TestPutCodecBuffer_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		PutCodecBuffer(nil)
	})
}

func TestGetChunkBuffer(t *testing.T) {
	bb := GetChunkBuffer()

	require.NotNil(t, bb)
	assert.Equal(t, 0, len(bb.Bytes()))
	assert.GreaterOrEqual(t, cap(bb.B), ChunkBufferDefaultSize)

	PutChunkBuffer(bb)
}

func TestDefaultPools_Independence(t *testing.T) {
	codecBuf := GetCodecBuffer()
	chunkBuf := GetChunkBuffer()

	assert.NotEqual(t, cap(codecBuf.B), cap(chunkBuf.B))

	PutCodecBuffer(codecBuf)
	PutChunkBuffer(chunkBuf)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := GetCodecBuffer()
				bb.Write([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutCodecBuffer(bb)
			}
		}()
	}

	wg.Wait()
}
