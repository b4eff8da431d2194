package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderPoolAllocateRelease(t *testing.T) {
	pool := NewOrderPool()

	order, ref, err := pool.Allocate(1, 100, 5, OrderSideBuy)
	require.NoError(t, err)
	require.Equal(t, uint64(1), order.id)
	require.Equal(t, 1, pool.Len())

	require.NoError(t, pool.Release(ref))
	require.Equal(t, 0, pool.Len())
}

func TestOrderPoolGrowsAcrossSlabs(t *testing.T) {
	pool := NewOrderPool()

	for i := 0; i < slabSize+10; i++ {
		_, _, err := pool.Allocate(uint64(i)+1, 1, 1, OrderSideBuy)
		require.NoError(t, err)
	}
	require.Equal(t, slabSize+10, pool.Len())
	require.Len(t, pool.slabs, 2)
}

func TestOrderPoolReuseAfterRelease(t *testing.T) {
	pool := NewOrderPool()

	var refs []poolRef
	for i := 0; i < slabSize; i++ {
		_, ref, err := pool.Allocate(uint64(i)+1, 1, 1, OrderSideBuy)
		require.NoError(t, err)
		refs = append(refs, ref)
	}
	require.Len(t, pool.slabs, 1)

	for _, ref := range refs {
		require.NoError(t, pool.Release(ref))
	}
	require.Equal(t, 0, pool.Len())

	_, _, err := pool.Allocate(9999, 1, 1, OrderSideBuy)
	require.NoError(t, err)
	require.Len(t, pool.slabs, 1, "releasing into the current slab must be reused before growing")
}

func TestOrderPoolInvalidRef(t *testing.T) {
	pool := NewOrderPool()
	require.ErrorIs(t, pool.Release(poolRef{slab: 7, index: 0}), ErrInvalidPoolRef)
}
