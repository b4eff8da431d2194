package matching

import (
	"sync/atomic"
	"time"
)

// Engine is a single-instrument limit order book and matching engine. All
// public methods are safe for concurrent use.
//
// Internally it composes: an OrderPool (C1) backing every live Order, two
// bookSides (C2/C3) for bids and asks, a registry (C4) mapping ids to orders
// and to terminal status, a tradeHistory (C5's output log), and an
// EventDispatcher (C7) that callers subscribe to for trade and book-change
// notifications.
type Engine struct {
	nextID atomic.Uint64

	pool    *OrderPool
	bids    *bookSide
	asks    *bookSide
	reg     *registry
	history *tradeHistory
	events  *EventDispatcher
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBookChangeInterval overrides the default coalescing window for
// OnBookChange delivery.
func WithBookChangeInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.events = NewEventDispatcher(d)
	}
}

// NewEngine creates an empty single-instrument engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		pool:    NewOrderPool(),
		bids:    newBookSide(OrderSideBuy),
		asks:    newBookSide(OrderSideSell),
		reg:     newRegistry(),
		history: newTradeHistory(),
		events:  NewEventDispatcher(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOnTrade installs the engine's trade subscriber.
func (e *Engine) SetOnTrade(h TradeHandler) {
	e.events.SetOnTrade(h)
}

// SetOnBookChange installs the engine's book-change subscriber.
func (e *Engine) SetOnBookChange(h BookChangeHandler) {
	e.events.SetOnBookChange(h)
}

func (e *Engine) sideFor(side OrderSide) *bookSide {
	if side == OrderSideBuy {
		return e.bids
	}
	return e.asks
}

// Submit accepts a new limit order, rests it on the book, and immediately
// attempts to match it against the opposite side. It returns the assigned
// order id.
//
// The order can fill immediately, as part of this same call, against
// resting liquidity already on the book — so a caller that needs to
// attribute the new order's own fills (e.g. a session layer mapping ids to
// clients) must do so before that happens. onAccepted, if given, runs
// synchronously with the order id once it is allocated and resting on the
// book, but before matching starts and therefore before any trade fires.
func (e *Engine) Submit(price float64, quantity uint32, side OrderSide, onAccepted ...func(id uint64)) (uint64, error) {
	if price <= 0 {
		return 0, ErrInvalidOrderPrice
	}
	if quantity == 0 {
		return 0, ErrInvalidOrderQuantity
	}

	id := e.nextID.Add(1)
	order, _, err := e.pool.Allocate(id, price, quantity, side)
	if err != nil {
		return 0, err
	}
	e.reg.register(order)
	e.sideFor(side).insert(order)

	for _, f := range onAccepted {
		f(id)
	}

	trades := e.match()
	e.publish(trades)
	return id, nil
}

// Cancel removes an open order from the book. It reports whether an open
// order with the given id was found and canceled.
func (e *Engine) Cancel(id uint64) (bool, error) {
	order, ok := e.reg.lookup(id)
	if !ok {
		return false, nil
	}

	e.reg.mu.Lock()
	if order.status != OrderStatusOpen {
		e.reg.mu.Unlock()
		return false, nil
	}
	order.status = OrderStatusCanceled
	e.reg.mu.Unlock()
	e.reg.finalize(id, OrderStatusCanceled)

	e.sideFor(order.side).removeOrder(order.price, id)
	_ = e.pool.Release(order.ref)

	e.events.notifyBookChange()
	return true, nil
}

// Modify replaces an open order's price and/or quantity. Internally this is
// cancel-then-resubmit at the new values: the order loses its place in time
// priority even if only its quantity shrank, and it is re-run through
// matching immediately. The order id is preserved.
func (e *Engine) Modify(id uint64, newPrice float64, newQuantity uint32) (bool, error) {
	if newPrice <= 0 {
		return false, ErrInvalidOrderPrice
	}
	if newQuantity == 0 {
		return false, ErrInvalidOrderQuantity
	}

	order, ok := e.reg.lookup(id)
	if !ok {
		return false, nil
	}

	e.reg.mu.Lock()
	if order.status != OrderStatusOpen {
		e.reg.mu.Unlock()
		return false, nil
	}
	e.reg.mu.Unlock()

	e.sideFor(order.side).removeOrder(order.price, id)
	order.price = newPrice
	order.quantity = newQuantity
	e.sideFor(order.side).insert(order)

	trades := e.match()
	e.publish(trades)
	return true, nil
}

// Status reports the lifecycle state of id, OrderStatusNotFound if the
// engine has never seen it.
func (e *Engine) Status(id uint64) OrderStatus {
	return e.reg.status(id)
}

// Snapshot returns every currently resting order, bids and asks each
// ordered from their best price outward.
func (e *Engine) Snapshot() (bids, asks []Snapshot) {
	return e.bids.snapshot(), e.asks.snapshot()
}

// TradeHistory returns up to limit of the most recent trades, newest last.
// A non-positive limit returns the entire history.
func (e *Engine) TradeHistory(limit int) []Trade {
	return e.history.recent(limit)
}

// BestBid returns the current best bid price, if the bid side is non-empty.
func (e *Engine) BestBid() (float64, bool) {
	return e.bids.bestPrice()
}

// BestAsk returns the current best ask price, if the ask side is non-empty.
func (e *Engine) BestAsk() (float64, bool) {
	return e.asks.bestPrice()
}

// publish delivers trades produced by a match pass and signals a book
// change, all after the caller has released every engine lock.
func (e *Engine) publish(trades []Trade) {
	for _, t := range trades {
		e.events.dispatchTrade(t)
	}
	e.events.notifyBookChange()
}
