package session

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ganto23/limitbook-engine/accounting"
	"github.com/ganto23/limitbook-engine/matching"
)

func newTestServer(t *testing.T) (*Server, *matching.Engine) {
	t.Helper()
	engine := matching.NewEngine()
	accountant := accounting.NewAccountant()
	srv := NewServer(engine, accountant, []string{"secret"}, 0.2, zap.NewNop())
	return srv, engine
}

func TestServerValidToken(t *testing.T) {
	srv, _ := newTestServer(t)
	require.True(t, srv.validToken("secret"))
	require.False(t, srv.validToken("nope"))
}

func TestServerMarkPriceFallsBackToBookMid(t *testing.T) {
	srv, engine := newTestServer(t)

	require.Equal(t, float64(0), srv.markPrice(), "empty book and no trades marks at zero")

	_, err := engine.Submit(99, 1, matching.OrderSideBuy)
	require.NoError(t, err)
	require.Equal(t, float64(99), srv.markPrice(), "only one side present marks at that side")

	_, err = engine.Submit(101, 1, matching.OrderSideSell)
	require.NoError(t, err)
	require.Equal(t, float64(100), srv.markPrice(), "both sides present marks at the mid")
}

func TestServerMarkPricePrefersLastTrade(t *testing.T) {
	srv, engine := newTestServer(t)

	_, err := engine.Submit(100, 5, matching.OrderSideBuy)
	require.NoError(t, err)
	_, err = engine.Submit(100, 5, matching.OrderSideSell)
	require.NoError(t, err)

	require.Equal(t, float64(100), srv.markPrice())
}
