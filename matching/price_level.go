package matching

import (
	"github.com/ganto23/limitbook-engine/types/list"
	"github.com/tidwall/hashmap"
)

// PriceLevel is the FIFO queue of resting orders at a single price. Orders
// are matched in the order they arrive; index lets cancel and modify
// locate and remove an order from the middle of the queue in O(1) instead of
// scanning it.
type PriceLevel struct {
	price  float64
	orders *list.List[*Order]
	index  *hashmap.Map[uint64, *list.Element[*Order]]
}

// newPriceLevel creates an empty FIFO queue for the given price.
func newPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{
		price:  price,
		orders: list.New[*Order](),
		index:  hashmap.New[uint64, *list.Element[*Order]](0),
	}
}

// Price returns the price this level represents.
func (pl *PriceLevel) Price() float64 {
	return pl.price
}

// Len returns the number of orders resting at this level.
func (pl *PriceLevel) Len() int {
	return pl.orders.Len()
}

// Front returns the oldest resting order at this level, or nil if empty.
func (pl *PriceLevel) Front() *Order {
	e := pl.orders.Front()
	if e == nil {
		return nil
	}
	return e.Value
}

// push appends an order to the back of the queue, preserving time priority.
func (pl *PriceLevel) push(o *Order) {
	elem := pl.orders.PushBack(o)
	o.elem = elem
	pl.index.Set(o.id, elem)
}

// remove removes an order from the queue by id. It reports whether the order
// was found.
func (pl *PriceLevel) remove(id uint64) bool {
	elem, ok := pl.index.Get(id)
	if !ok {
		return false
	}
	pl.index.Delete(id)
	order, err := pl.orders.Remove(elem)
	if err == nil {
		order.elem = nil
	}
	return true
}

// popFront removes and returns the oldest order, used once it has been
// fully filled during matching.
func (pl *PriceLevel) popFront() *Order {
	e := pl.orders.Front()
	if e == nil {
		return nil
	}
	pl.index.Delete(e.Value.id)
	order, _ := pl.orders.Remove(e)
	order.elem = nil
	return order
}
