package matching

import "github.com/ganto23/limitbook-engine/types/list"

// poolRef is a handle into the order allocator's slab storage. It is opaque to
// everything outside allocator.go, which is the only place that dereferences it.
type poolRef struct {
	slab  int32
	index int32
}

// Order is a single resting or in-flight limit order.
//
// Orders are never copied once submitted: the registry and the price level
// share the same *Order so that a fill is visible to every holder of the
// pointer without a re-lookup.
type Order struct {
	id       uint64
	price    float64
	quantity uint32
	side     OrderSide
	status   OrderStatus

	ref  poolRef
	elem *list.Element[*Order] // position inside its PriceLevel FIFO, nil when not resting
}

// ID returns the order identifier assigned at submission time.
func (o *Order) ID() uint64 {
	return o.id
}

// Price returns the order's limit price.
func (o *Order) Price() float64 {
	return o.price
}

// Quantity returns the order's remaining, unfilled quantity.
func (o *Order) Quantity() uint32 {
	return o.quantity
}

// Side returns which side of the book the order rests on.
func (o *Order) Side() OrderSide {
	return o.side
}

// Status returns the order's current lifecycle state.
func (o *Order) Status() OrderStatus {
	return o.status
}

// Snapshot is an immutable, safe-to-share copy of an order's state, used for
// book snapshots so callers never observe a pointer the engine might mutate
// concurrently.
type Snapshot struct {
	ID       uint64
	Price    float64
	Quantity uint32
	Side     OrderSide
	Status   OrderStatus
}

// Snapshot copies the order's current fields.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:       o.id,
		Price:    o.price,
		Quantity: o.quantity,
		Side:     o.side,
		Status:   o.status,
	}
}
