package shuffle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardKnownCase(t *testing.T) {
	// item size 2, 3 records: [a0 b0 a1 b1 a2 b2] -> [a0 a1 a2 b0 b1 b2]
	src := []byte{1, 10, 2, 20, 3, 30}
	got := Forward(src, 2)
	assert.Equal(t, []byte{1, 2, 3, 10, 20, 30}, got)
}

func TestForwardWithTrailingBytes(t *testing.T) {
	// item size 2, 6 shuffled bytes + 1 trailing byte copied verbatim.
	src := []byte{1, 10, 2, 20, 3, 30, 99}
	got := Forward(src, 2)
	assert.Equal(t, []byte{1, 2, 3, 10, 20, 30, 99}, got)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, itemSize := range []int{1, 2, 3, 4, 8, 16} {
		for _, n := range []int{0, 1, 7, 16, 17, 1024, 1031} {
			src := make([]byte, n)
			rng.Read(src)

			forward := Forward(src, itemSize)
			back := Inverse(forward, itemSize)
			assert.Equal(t, src, back, "itemSize=%d n=%d", itemSize, n)
		}
	}
}

func TestItemSizeOneIsNoOp(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	assert.Equal(t, src, Forward(src, 1))
	assert.Equal(t, src, Inverse(src, 1))
	assert.Equal(t, src, Forward(src, 0))
}

func TestDoesNotAliasInput(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	out := Forward(src, 2)
	out[0] = 99
	assert.Equal(t, byte(1), src[0])
}
