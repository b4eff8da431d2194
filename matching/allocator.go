package matching

import "sync"

// slabSize is the number of orders held by a single slab. The pool grows by
// appending a whole new slab once the current one is exhausted; it never
// shrinks, since compacting would invalidate the poolRef handles held by the
// registry and price levels.
const slabSize = 1024

// orderSlab is a fixed-size block of Order storage plus an intrusive free
// list threaded through a parallel index array. Using an index instead of a
// raw pointer in the free slot keeps the allocator entirely within safe Go:
// a freed Order's storage is reused in place, but nothing ever reinterprets
// its bytes as a pointer the way the original pointer-chasing free list did.
type orderSlab struct {
	mu       sync.Mutex
	orders   [slabSize]Order
	next     [slabSize]int32 // next[i] is the next free index after i, or -1
	freeHead int32
	free     int32 // count of free slots, for diagnostics
}

func newOrderSlab() *orderSlab {
	s := &orderSlab{freeHead: 0, free: slabSize}
	for i := int32(0); i < slabSize-1; i++ {
		s.next[i] = i + 1
	}
	s.next[slabSize-1] = -1
	return s
}

// allocate claims a free slot, or reports the slab is full.
func (s *orderSlab) allocate() (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.freeHead == -1 {
		return 0, false
	}
	idx := s.freeHead
	s.freeHead = s.next[idx]
	s.free--
	return idx, true
}

// release returns a slot to the free list.
func (s *orderSlab) release(idx int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[idx] = s.freeHead
	s.freeHead = idx
	s.free++
}

// OrderPool is a slab allocator for Order values. It hands out stable *Order
// pointers that remain valid until Release, avoiding a heap allocation per
// order in the common case where orders churn through the same slots.
//
// Growth (appending a new slab) is guarded by mu; steady-state Allocate and
// Release only ever touch a single slab's own mutex, so concurrent traffic
// against different slabs never contends on the pool lock.
type OrderPool struct {
	mu    sync.RWMutex
	slabs []*orderSlab
	// current is the slab Allocate tries first. It only ever moves forward;
	// a slab that frees up slots behind current is still reachable by
	// Release, just not retried by future Allocate calls.
	current int
}

// NewOrderPool creates a pool with a single slab.
func NewOrderPool() *OrderPool {
	return &OrderPool{slabs: []*orderSlab{newOrderSlab()}}
}

// Allocate reserves storage for a new order and returns a pointer to it
// along with the handle needed to release it later. The returned Order has
// its fields already populated.
func (p *OrderPool) Allocate(id uint64, price float64, quantity uint32, side OrderSide) (*Order, poolRef, error) {
	p.mu.RLock()
	slabIdx := p.current
	slab := p.slabs[slabIdx]
	p.mu.RUnlock()

	idx, ok := slab.allocate()
	if !ok {
		p.mu.Lock()
		// Another goroutine may have already grown the pool while we waited
		// for the write lock; re-check before appending another slab.
		if p.current == slabIdx {
			p.slabs = append(p.slabs, newOrderSlab())
			p.current = len(p.slabs) - 1
		}
		slabIdx = p.current
		slab = p.slabs[slabIdx]
		p.mu.Unlock()

		idx, ok = slab.allocate()
		if !ok {
			return nil, poolRef{}, ErrPoolExhausted
		}
	}

	ref := poolRef{slab: int32(slabIdx), index: idx}
	order := &slab.orders[idx]
	*order = Order{
		id:       id,
		price:    price,
		quantity: quantity,
		side:     side,
		status:   OrderStatusOpen,
		ref:      ref,
	}
	return order, ref, nil
}

// Release returns an order's storage to its slab's free list. The caller
// must not use the Order pointer again afterwards.
func (p *OrderPool) Release(ref poolRef) error {
	p.mu.RLock()
	if ref.slab < 0 || int(ref.slab) >= len(p.slabs) {
		p.mu.RUnlock()
		return ErrInvalidPoolRef
	}
	slab := p.slabs[ref.slab]
	p.mu.RUnlock()

	if ref.index < 0 || ref.index >= slabSize {
		return ErrInvalidPoolRef
	}
	slab.release(ref.index)
	return nil
}

// Len reports the total number of outstanding (allocated) orders across all
// slabs. It is O(slabs), intended for diagnostics and tests, not hot paths.
func (p *OrderPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for _, s := range p.slabs {
		s.mu.Lock()
		total += slabSize - int(s.free)
		s.mu.Unlock()
	}
	return total
}
