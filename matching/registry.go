package matching

import (
	"sync"

	"github.com/tidwall/hashmap"
)

// registry tracks every order the engine has ever accepted: live orders by
// pointer, and terminal orders (filled or canceled) by their final status,
// so a status query still resolves correctly after an order leaves the book
// and its storage is returned to the pool.
type registry struct {
	mu       sync.RWMutex
	live     *hashmap.Map[uint64, *Order]
	terminal *hashmap.Map[uint64, OrderStatus]
}

func newRegistry() *registry {
	return &registry{
		live:     hashmap.New[uint64, *Order](0),
		terminal: hashmap.New[uint64, OrderStatus](0),
	}
}

// register records a newly submitted order as live.
func (r *registry) register(o *Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live.Set(o.id, o)
}

// lookup returns the live order for id, if any.
func (r *registry) lookup(id uint64) (*Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.live.Get(id)
}

// finalize moves an order from live to terminal with the given status. It
// is idempotent from the caller's perspective: finalizing an id that was
// already moved is a no-op.
func (r *registry) finalize(id uint64, status OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live.Get(id); !ok {
		return
	}
	r.live.Delete(id)
	r.terminal.Set(id, status)
}

// status reports the lifecycle state of any id the registry has ever seen,
// OrderStatusNotFound otherwise.
func (r *registry) status(id uint64) OrderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.live.Get(id); ok {
		return o.status
	}
	if st, ok := r.terminal.Get(id); ok {
		return st
	}
	return OrderStatusNotFound
}
