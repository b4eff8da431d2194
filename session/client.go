package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ganto23/limitbook-engine/accounting"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Client is one authenticated (or authenticating) WebSocket connection.
// Each client runs a dedicated read-loop and write-loop goroutine pair, the
// idiomatic Go rendering of the original single-threaded uWebSockets
// per-connection event handler.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	server  *Server
	log     *zap.Logger
	limiter *tokenBucket

	authenticated bool
	account       *accounting.Account
	owned         map[uint64]struct{}
}

func newClient(conn *websocket.Conn, server *Server, log *zap.Logger, pnlRateLimitPerSec float64) *Client {
	return &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		server:  server,
		log:     log,
		limiter: newTokenBucket(1, pnlRateLimitPerSec),
		owned:   make(map[uint64]struct{}),
	}
}

// run starts the client's read and write pumps and blocks until the
// connection closes. Call it from its own goroutine.
func (c *Client) run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(outboundMessage{Type: "error", Error: "malformed message"})
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply enqueues a single message for delivery, dropping it if the client's
// send buffer is full rather than blocking the read loop behind a slow
// reader.
func (c *Client) reply(msg outboundMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal outbound message", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
		c.log.Warn("dropping message to slow client", zap.String("session", c.id))
	}
}

func (c *Client) ownsOrder(id uint64) bool {
	_, ok := c.owned[id]
	return ok
}
