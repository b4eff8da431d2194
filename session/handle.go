package session

// handle dispatches a single decoded inbound message to the matching engine
// and/or accounting layer, translating the result into an outbound reply.
//
// Authentication is enforced structurally: every branch other than "auth"
// short-circuits with ErrNotAuthenticated until the client has authed,
// mirroring the original handler's "Not authenticated" guard.
func (c *Client) handle(msg inboundMessage) {
	if msg.Type != "auth" && !c.authenticated {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrNotAuthenticated.Error()})
		return
	}

	switch msg.Type {
	case "auth":
		c.handleAuth(msg)
	case "submit":
		c.handleSubmit(msg)
	case "cancel":
		c.handleCancel(msg)
	case "modify":
		c.handleModify(msg)
	case "status":
		c.handleStatus(msg)
	case "snapshot":
		c.handleSnapshot(msg)
	case "trade_history":
		c.handleTradeHistory(msg)
	case "pnl":
		c.handlePnL(msg)
	default:
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrUnknownMessage.Error()})
	}
}

func (c *Client) handleAuth(msg inboundMessage) {
	if !c.server.validToken(msg.Token) {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrInvalidToken.Error()})
		return
	}
	c.authenticated = true
	c.account = c.server.accountant.Account(c.id)
	c.reply(outboundMessage{Type: "auth", Corr: msg.Corr, OK: true})
}

func (c *Client) handleSubmit(msg inboundMessage) {
	side, ok := parseSide(msg.Side)
	if !ok {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: "invalid side"})
		return
	}
	id, err := c.server.engine.Submit(msg.Price, msg.Qty, side, func(id uint64) {
		// Runs before the new order can match, so the accountant already
		// knows this id is ours by the time any fill against it fires.
		c.owned[id] = struct{}{}
		c.server.accountant.TrackOrder(c.id, id)
	})
	if err != nil {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: err.Error()})
		return
	}
	c.reply(outboundMessage{Type: "submit", Corr: msg.Corr, OK: true, ID: id})
}

func (c *Client) handleCancel(msg inboundMessage) {
	if !c.ownsOrder(msg.ID) {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrNotOwner.Error()})
		return
	}
	ok, err := c.server.engine.Cancel(msg.ID)
	if err != nil {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: err.Error()})
		return
	}
	if ok {
		delete(c.owned, msg.ID)
		c.server.accountant.Untrack(msg.ID)
	}
	c.reply(outboundMessage{Type: "cancel", Corr: msg.Corr, OK: ok, ID: msg.ID})
}

func (c *Client) handleModify(msg inboundMessage) {
	if !c.ownsOrder(msg.ID) {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrNotOwner.Error()})
		return
	}
	ok, err := c.server.engine.Modify(msg.ID, msg.Price, msg.Qty)
	if err != nil {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: err.Error()})
		return
	}
	c.reply(outboundMessage{Type: "modify", Corr: msg.Corr, OK: ok, ID: msg.ID})
}

func (c *Client) handleStatus(msg inboundMessage) {
	status := c.server.engine.Status(msg.ID)
	c.reply(outboundMessage{Type: "status", Corr: msg.Corr, ID: msg.ID, Status: status.String()})
}

func (c *Client) handleSnapshot(msg inboundMessage) {
	bids, asks := c.server.engine.Snapshot()
	c.reply(outboundMessage{
		Type: "snapshot",
		Corr: msg.Corr,
		Bids: newOrderViews(bids),
		Asks: newOrderViews(asks),
	})
}

func (c *Client) handleTradeHistory(msg inboundMessage) {
	trades := c.server.engine.TradeHistory(msg.Limit)
	views := make([]tradeView, len(trades))
	for i, t := range trades {
		views[i] = newTradeView(t)
	}
	c.reply(outboundMessage{Type: "trade_history", Corr: msg.Corr, Trades: views})
}

func (c *Client) handlePnL(msg inboundMessage) {
	if !c.limiter.allow() {
		c.reply(outboundMessage{Type: "error", Corr: msg.Corr, Error: ErrRateLimited.Error()})
		return
	}
	mark := c.server.markPrice()
	snap := c.account.Snapshot(mark)
	c.reply(outboundMessage{
		Type:       "pnl",
		Corr:       msg.Corr,
		Position:   snap.Position,
		AvgCost:    snap.AvgCost,
		Realized:   snap.RealizedPnL,
		Unrealized: snap.Unrealized,
	})
}
