package accounting

import (
	"sync"

	"github.com/tidwall/hashmap"
)

// Accountant fans trade events out to per-client Accounts. It tracks which
// client owns each order id so that a trade, which only carries buy/sell
// order ids, can be attributed to the right account(s).
type Accountant struct {
	mu       sync.RWMutex
	accounts *hashmap.Map[string, *Account]
	owner    *hashmap.Map[uint64, string]
}

// NewAccountant creates an empty accountant.
func NewAccountant() *Accountant {
	return &Accountant{
		accounts: hashmap.New[string, *Account](0),
		owner:    hashmap.New[uint64, string](0),
	}
}

// Account returns the account for clientID, creating it if this is the
// first time the client has been seen.
func (a *Accountant) Account(clientID string) *Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	if acct, ok := a.accounts.Get(clientID); ok {
		return acct
	}
	acct := NewAccount(clientID)
	a.accounts.Set(clientID, acct)
	return acct
}

// TrackOrder records that clientID owns order id, so a later fill against
// that id is routed to the client's account.
func (a *Accountant) TrackOrder(clientID string, id uint64) {
	a.mu.Lock()
	a.owner.Set(id, clientID)
	a.mu.Unlock()
	a.Account(clientID).Own(id)
}

// Untrack drops the order-to-client mapping once an order reaches a
// terminal state.
func (a *Accountant) Untrack(id uint64) {
	a.mu.Lock()
	clientID, ok := a.owner.Get(id)
	if ok {
		a.owner.Delete(id)
	}
	a.mu.Unlock()
	if ok {
		if acct, ok := a.lookupAccount(clientID); ok {
			acct.Forget(id)
		}
	}
}

func (a *Accountant) lookupAccount(clientID string) (*Account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accounts.Get(clientID)
}

func (a *Accountant) ownerOf(id uint64) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.owner.Get(id)
}

// OnTrade is the engine's trade handler: it applies a fill to whichever
// tracked client(s) own the buy and/or sell side of the trade. An id the
// accountant never tracked (e.g. an order from an anonymous feed) is
// silently ignored on that side.
func (a *Accountant) OnTrade(buyOrderID, sellOrderID uint64, price float64, quantity uint32) {
	if clientID, ok := a.ownerOf(buyOrderID); ok {
		a.Account(clientID).ApplyFill(SideBuy, quantity, price)
	}
	if clientID, ok := a.ownerOf(sellOrderID); ok {
		a.Account(clientID).ApplyFill(SideSell, quantity, price)
	}
}

// OpenOrder is the minimal view of a live resting order that
// OpenOrderMarkToMarket needs: its price, remaining quantity, and which side
// it rests on.
type OpenOrder struct {
	Price    float64
	Quantity uint32
	Side     Side
}

// OpenOrderMarkToMarket sums, over a client's live open orders, the
// hypothetical PnL contribution of each order filling right now against the
// best available opposite price:
//
//	Σ (bestOpposite - order.Price) * order.Quantity * sign(order.Side)
//
// A buy order benefits from a high bestOpposite (the best ask it could lift
// against); a sell order benefits from a low one, hence the sign flip.
func OpenOrderMarkToMarket(orders []OpenOrder, bestOpposite float64) float64 {
	var total float64
	for _, o := range orders {
		diff := (bestOpposite - o.Price) * float64(o.Quantity)
		if o.Side == SideSell {
			diff = -diff
		}
		total += diff
	}
	return total
}
