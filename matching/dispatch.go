package matching

import (
	"sync"
	"time"
)

// defaultBookChangeInterval is the minimum spacing between two successive
// OnBookChange deliveries.
const defaultBookChangeInterval = 100 * time.Millisecond

// TradeHandler is invoked once per trade, in match-pass order.
type TradeHandler func(Trade)

// BookChangeHandler is invoked after a book mutation settles.
type BookChangeHandler func()

// EventDispatcher fans engine events out to at most one trade subscriber and
// one book-change subscriber. Trade events are delivered immediately and
// uncoalesced; book-change events are coalesced on a trailing edge so a burst
// of mutations produces one notification per quiet period instead of one per
// mutation.
//
// Every handler call happens after the engine has released its book locks,
// so a handler is free to call back into the engine without risking the
// lock-order deadlock a callback-from-inside-the-match-loop would invite.
type EventDispatcher struct {
	mu          sync.Mutex
	minInterval time.Duration
	onTrade     TradeHandler
	onBookChg   BookChangeHandler
	timer       *time.Timer
	lastFired   time.Time
	pending     bool
}

// NewEventDispatcher creates a dispatcher that coalesces book-change events
// at minInterval. A non-positive interval falls back to the default.
func NewEventDispatcher(minInterval time.Duration) *EventDispatcher {
	if minInterval <= 0 {
		minInterval = defaultBookChangeInterval
	}
	return &EventDispatcher{minInterval: minInterval}
}

// SetOnTrade installs (or clears, with nil) the trade handler.
func (d *EventDispatcher) SetOnTrade(h TradeHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onTrade = h
}

// SetOnBookChange installs (or clears, with nil) the book-change handler.
func (d *EventDispatcher) SetOnBookChange(h BookChangeHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onBookChg = h
}

// dispatchTrade delivers a trade to the current handler, if any. Called by
// the engine only after its locks are released.
func (d *EventDispatcher) dispatchTrade(t Trade) {
	d.mu.Lock()
	h := d.onTrade
	d.mu.Unlock()
	if h != nil {
		h(t)
	}
}

// notifyBookChange schedules (or reschedules) a coalesced OnBookChange
// delivery. If the minimum interval has already elapsed since the last
// delivery, it fires right away instead of waiting out a full new window.
func (d *EventDispatcher) notifyBookChange() {
	d.mu.Lock()

	if d.onBookChg == nil {
		d.mu.Unlock()
		return
	}

	now := time.Now()
	if d.timer == nil && now.Sub(d.lastFired) >= d.minInterval {
		d.lastFired = now
		h := d.onBookChg
		d.mu.Unlock()
		h()
		return
	}

	d.pending = true
	if d.timer != nil {
		d.mu.Unlock()
		return
	}
	d.timer = time.AfterFunc(d.minInterval, d.fireBookChange)
	d.mu.Unlock()
}

func (d *EventDispatcher) fireBookChange() {
	d.mu.Lock()
	d.timer = nil
	fire := d.pending
	d.pending = false
	h := d.onBookChg
	if fire {
		d.lastFired = time.Now()
	}
	d.mu.Unlock()

	if fire && h != nil {
		h()
	}
}
