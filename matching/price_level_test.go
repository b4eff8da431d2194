package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceLevelFIFOOrder(t *testing.T) {
	level := newPriceLevel(100)

	o1 := &Order{id: 1}
	o2 := &Order{id: 2}
	o3 := &Order{id: 3}
	level.push(o1)
	level.push(o2)
	level.push(o3)

	require.Equal(t, 3, level.Len())
	require.Equal(t, uint64(1), level.Front().id)

	removed := level.remove(2)
	require.True(t, removed)
	require.Equal(t, 2, level.Len())

	require.Equal(t, uint64(1), level.popFront().id)
	require.Equal(t, uint64(3), level.popFront().id)
	require.Equal(t, 0, level.Len())
	require.Nil(t, level.Front())
}

func TestPriceLevelRemoveMissing(t *testing.T) {
	level := newPriceLevel(50)
	level.push(&Order{id: 1})
	require.False(t, level.remove(999))
	require.Equal(t, 1, level.Len())
}
