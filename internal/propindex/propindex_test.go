package propindex

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndPosition(t *testing.T) {
	idx := New()

	require.True(t, idx.Insert("Instrument:Camera:Gain", 0))
	require.True(t, idx.Insert("Observation:Time:Start", 1))

	pos, ok := idx.Position("Instrument:Camera:Gain")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = idx.Position("Observation:Time:Start")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = idx.Position("NoSuchProperty")
	assert.False(t, ok)
}

func TestInsertRejectsDuplicate(t *testing.T) {
	idx := New()

	require.True(t, idx.Insert("XISF:CreationTime", 0))
	assert.False(t, idx.Insert("XISF:CreationTime", 5))

	pos, ok := idx.Position("XISF:CreationTime")
	require.True(t, ok)
	assert.Equal(t, 0, pos, "duplicate insert must not overwrite the original position")
}

func TestHasAndRemove(t *testing.T) {
	idx := New()
	idx.Insert("A", 0)
	idx.Insert("B", 1)

	assert.True(t, idx.Has("A"))
	idx.Remove("A")
	assert.False(t, idx.Has("A"))
	assert.True(t, idx.Has("B"))
}

func TestReindex(t *testing.T) {
	idx := New()
	idx.Insert("A", 0)
	idx.Insert("B", 1)
	idx.Insert("C", 2)

	idx.Reindex([]string{"B", "C"})

	assert.Equal(t, 2, idx.Len())
	assert.False(t, idx.Has("A"))

	pos, ok := idx.Position("B")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = idx.Position("C")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestLen(t *testing.T) {
	idx := New()
	assert.Equal(t, 0, idx.Len())

	idx.Insert("A", 0)
	idx.Insert("B", 1)
	assert.Equal(t, 2, idx.Len())
}

func TestManyIdsNoCollisionMisbehavior(t *testing.T) {
	idx := New()

	ids := make([]string, 2000)
	for i := range ids {
		ids[i] = fmt.Sprintf("Namespace:Group:Property%d", i)
	}

	for i, id := range ids {
		require.True(t, idx.Insert(id, i))
	}

	for i, id := range ids {
		pos, ok := idx.Position(id)
		require.True(t, ok)
		assert.Equal(t, i, pos)
	}
}
