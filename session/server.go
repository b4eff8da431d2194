package session

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/tidwall/hashmap"
	"go.uber.org/zap"

	"github.com/ganto23/limitbook-engine/accounting"
	"github.com/ganto23/limitbook-engine/matching"
)

// Server upgrades HTTP connections to WebSocket sessions and wires itself as
// the matching engine's trade and book-change subscriber, fanning both
// event types out to every authenticated connection.
type Server struct {
	engine     *matching.Engine
	accountant *accounting.Accountant
	log        *zap.Logger
	upgrader   websocket.Upgrader

	tokens map[string]struct{}

	pnlRateLimitPerSec float64

	mu      sync.RWMutex
	clients *hashmap.Map[string, *Client]

	priceMu   sync.RWMutex
	lastTrade float64
	hasTrade  bool
}

// NewServer creates a server fronting engine with the given set of valid
// bearer tokens, and subscribes itself to the engine's trade and
// book-change events. pnlRateLimitPerSec bounds how often a single session
// may query its own PnL.
func NewServer(engine *matching.Engine, accountant *accounting.Accountant, tokens []string, pnlRateLimitPerSec float64, log *zap.Logger) *Server {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	s := &Server{
		engine:             engine,
		accountant:         accountant,
		log:                log,
		upgrader:           websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096},
		tokens:             tokenSet,
		pnlRateLimitPerSec: pnlRateLimitPerSec,
		clients:            hashmap.New[string, *Client](0),
	}

	engine.SetOnTrade(func(t matching.Trade) {
		accountant.OnTrade(t.BuyOrderID, t.SellOrderID, t.Price, t.Quantity)
		s.recordTrade(t.Price)
		s.broadcastTrade(t)
	})
	engine.SetOnBookChange(s.broadcastBookChange)

	return s
}

func (s *Server) validToken(token string) bool {
	_, ok := s.tokens[token]
	return ok
}

func (s *Server) recordTrade(price float64) {
	s.priceMu.Lock()
	defer s.priceMu.Unlock()
	s.lastTrade = price
	s.hasTrade = true
}

// markPrice resolves the mark used for unrealized PnL: the last trade
// price, else the mid of best bid/ask, else whichever single side is
// present, else zero when the book and trade history are both empty.
func (s *Server) markPrice() float64 {
	s.priceMu.RLock()
	last, hasTrade := s.lastTrade, s.hasTrade
	s.priceMu.RUnlock()
	if hasTrade {
		return last
	}

	bid, hasBid := s.engine.BestBid()
	ask, hasAsk := s.engine.BestAsk()
	switch {
	case hasBid && hasAsk:
		return (bid + ask) / 2
	case hasBid:
		return bid
	case hasAsk:
		return ask
	default:
		return 0
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and runs the
// resulting client until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := newClient(conn, s, s.log, s.pnlRateLimitPerSec)
	s.register(client)
	client.run()
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.Set(c.id, c)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.Delete(c.id)
}

func (s *Server) broadcastTrade(t matching.Trade) {
	view := newTradeView(t)
	msg := outboundMessage{Type: "trade", Trade: &view}
	s.broadcast(msg)
}

func (s *Server) broadcastBookChange() {
	bids, asks := s.engine.Snapshot()
	msg := outboundMessage{Type: "book_change", Bids: newOrderViews(bids), Asks: newOrderViews(asks)}
	s.broadcast(msg)
}

func (s *Server) broadcast(msg outboundMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.clients.Scan(func(_ string, c *Client) bool {
		if c.authenticated {
			c.reply(msg)
		}
		return true
	})
}
