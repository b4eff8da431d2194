package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganto23/limitbook-engine/matching"
)

func TestParseSide(t *testing.T) {
	side, ok := parseSide("buy")
	require.True(t, ok)
	require.Equal(t, matching.OrderSideBuy, side)

	side, ok = parseSide("sell")
	require.True(t, ok)
	require.Equal(t, matching.OrderSideSell, side)

	_, ok = parseSide("nope")
	require.False(t, ok)
}

func TestNewOrderViews(t *testing.T) {
	snaps := []matching.Snapshot{
		{ID: 1, Price: 100, Quantity: 5},
		{ID: 2, Price: 101, Quantity: 3},
	}
	views := newOrderViews(snaps)
	require.Len(t, views, 2)
	require.Equal(t, uint64(1), views[0].ID)
	require.Equal(t, float64(101), views[1].Price)
}
