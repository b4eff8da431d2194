package session

import "github.com/ganto23/limitbook-engine/matching"

// inboundMessage is the envelope every client message is decoded into.
// Mirrors the nlohmann::json ad-hoc message shapes of the original
// websocket handler, flattened into one struct with optional fields rather
// than a type switch over raw JSON, which is the idiomatic Go rendering of
// the same "one message type per verb" protocol.
type inboundMessage struct {
	Type  string  `json:"type"`
	Corr  string  `json:"corr,omitempty"`
	Token string  `json:"token,omitempty"`
	Price float64 `json:"price,omitempty"`
	Qty   uint32  `json:"qty,omitempty"`
	Side  string  `json:"side,omitempty"`
	ID    uint64  `json:"id,omitempty"`
	Limit int     `json:"limit,omitempty"`
}

// outboundMessage is the envelope for every server-to-client message.
type outboundMessage struct {
	Type  string `json:"type"`
	Corr  string `json:"corr,omitempty"`

	Error string `json:"error,omitempty"`

	ID     uint64 `json:"id,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Status string `json:"status,omitempty"`

	Trade *tradeView `json:"trade,omitempty"`

	Bids []orderView `json:"bids,omitempty"`
	Asks []orderView `json:"asks,omitempty"`

	Trades []tradeView `json:"trades,omitempty"`

	Position    int64   `json:"position,omitempty"`
	AvgCost     float64 `json:"avg_cost,omitempty"`
	Realized    float64 `json:"realized,omitempty"`
	Unrealized  float64 `json:"unrealized,omitempty"`
}

type orderView struct {
	ID       uint64  `json:"id"`
	Price    float64 `json:"price"`
	Quantity uint32  `json:"quantity"`
}

type tradeView struct {
	BuyOrderID  uint64  `json:"buy_order_id"`
	SellOrderID uint64  `json:"sell_order_id"`
	Price       float64 `json:"price"`
	Quantity    uint32  `json:"quantity"`
}

func newTradeView(t matching.Trade) tradeView {
	return tradeView{
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Price:       t.Price,
		Quantity:    t.Quantity,
	}
}

func newOrderViews(snapshots []matching.Snapshot) []orderView {
	views := make([]orderView, len(snapshots))
	for i, s := range snapshots {
		views[i] = orderView{ID: s.ID, Price: s.Price, Quantity: s.Quantity}
	}
	return views
}

func parseSide(s string) (matching.OrderSide, bool) {
	switch s {
	case "buy":
		return matching.OrderSideBuy, true
	case "sell":
		return matching.OrderSideSell, true
	default:
		return 0, false
	}
}
