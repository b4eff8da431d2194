package accounting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountantRoutesTradeToOwners(t *testing.T) {
	acc := NewAccountant()
	acc.TrackOrder("alice", 1)
	acc.TrackOrder("bob", 2)

	acc.OnTrade(1, 2, 100, 5)

	alice := acc.Account("alice")
	require.Equal(t, int64(5), alice.Position())

	bob := acc.Account("bob")
	require.Equal(t, int64(-5), bob.Position())
}

func TestAccountantIgnoresUntrackedSide(t *testing.T) {
	acc := NewAccountant()
	acc.TrackOrder("alice", 1)

	acc.OnTrade(1, 999, 100, 5)

	alice := acc.Account("alice")
	require.Equal(t, int64(5), alice.Position())
}

func TestAccountantPositionFlipAcrossTwoTrades(t *testing.T) {
	acc := NewAccountant()
	acc.TrackOrder("x", 1)
	acc.TrackOrder("maker1", 2)
	acc.TrackOrder("x", 3)
	acc.TrackOrder("maker2", 4)

	// x buys 3 against resting sell (order 2).
	acc.OnTrade(1, 2, 100, 3)
	// x sells 5 against resting buy (order 4).
	acc.OnTrade(4, 3, 100, 5)

	x := acc.Account("x")
	require.Equal(t, int64(-2), x.Position())
	require.Equal(t, float64(0), x.RealizedPnL())
}

func TestOpenOrderMarkToMarket(t *testing.T) {
	orders := []OpenOrder{
		{Price: 95, Quantity: 2, Side: SideBuy},
		{Price: 105, Quantity: 1, Side: SideSell},
	}
	// best opposite (e.g. best ask for the buy, best bid for the sell) at 100
	got := OpenOrderMarkToMarket(orders, 100)
	// buy: (100-95)*2 = 10; sell: -(100-105)*1 = 5; total 15
	require.InDelta(t, 15, got, 1e-9)
}
