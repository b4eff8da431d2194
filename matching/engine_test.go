package matching

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEngineOnTradeDelivery(t *testing.T) {
	e := NewEngine()

	var mu sync.Mutex
	var received []Trade
	e.SetOnTrade(func(tr Trade) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, tr)
	})

	_, err := e.Submit(100, 5, OrderSideBuy)
	require.NoError(t, err)
	_, err = e.Submit(100, 5, OrderSideSell)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	require.Equal(t, uint32(5), received[0].Quantity)
}

func TestEngineOnBookChangeCoalesces(t *testing.T) {
	e := NewEngine(WithBookChangeInterval(50 * time.Millisecond))

	var mu sync.Mutex
	count := 0
	e.SetOnBookChange(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	for i := 0; i < 10; i++ {
		_, err := e.Submit(float64(100+i), 1, OrderSideBuy)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count >= 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	fired := count
	mu.Unlock()
	require.LessOrEqual(t, fired, 2, "coalescing should suppress most of a tight burst")
}

func TestEngineCallbackCanCallBackIntoEngine(t *testing.T) {
	e := NewEngine()

	done := make(chan struct{})
	e.SetOnTrade(func(tr Trade) {
		// Must not deadlock: the dispatcher only invokes handlers after the
		// engine has released its book locks.
		_ = e.Status(tr.BuyOrderID)
		e.Snapshot()
		close(done)
	})

	_, err := e.Submit(100, 5, OrderSideBuy)
	require.NoError(t, err)
	_, err = e.Submit(100, 5, OrderSideSell)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("trade handler callback deadlocked")
	}
}
