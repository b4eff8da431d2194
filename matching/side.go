package matching

import (
	"sync"

	"github.com/ganto23/limitbook-engine/types/avl"
)

// bookSide is one side (bids or asks) of the order book: an AVL tree of
// price levels keyed so that iterating in order visits the best price
// first, guarded by its own lock so bid and ask traffic never contend with
// each other outside of the matching loop itself.
type bookSide struct {
	mu     sync.RWMutex
	side   OrderSide
	levels avl.Tree[float64, *PriceLevel]
}

// newBookSide creates a side whose tree orders prices so the best price
// (highest for bids, lowest for asks) always sorts first.
func newBookSide(side OrderSide) *bookSide {
	var compare func(a, b float64) int
	if side == OrderSideBuy {
		// Bids: higher price is better, so reverse natural order.
		compare = func(a, b float64) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			default:
				return 0
			}
		}
	} else {
		compare = func(a, b float64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}
	return &bookSide{
		side:   side,
		levels: avl.NewTree[float64, *PriceLevel](compare),
	}
}

// levelFor returns the price level for price, creating it if necessary.
// Caller must hold mu for writing.
func (s *bookSide) levelFor(price float64) *PriceLevel {
	node := s.levels.Find(price)
	if node != nil {
		return node.Value()
	}
	level := newPriceLevel(price)
	_, _ = s.levels.Add(price, level)
	return level
}

// insert adds an order to the appropriate price level, creating the level
// if this is the first order at that price.
func (s *bookSide) insert(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level := s.levelFor(o.price)
	level.push(o)
}

// removeOrder removes an order from its price level by price and id,
// erasing the level entirely if it becomes empty. It reports whether the
// order was found.
func (s *bookSide) removeOrder(price float64, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	node := s.levels.Find(price)
	if node == nil {
		return false
	}
	level := node.Value()
	found := level.remove(id)
	if level.Len() == 0 {
		_, _ = s.levels.Remove(price)
	}
	return found
}

// best returns the price level with the best price on this side, or nil if
// the side is empty. Caller must hold mu (at least for reading).
func (s *bookSide) best() *PriceLevel {
	node := s.levels.MostLeft()
	if node == nil {
		return nil
	}
	return node.Value()
}

// eraseIfEmpty removes the given level from the tree if it no longer holds
// any orders. Caller must hold mu for writing.
func (s *bookSide) eraseIfEmpty(level *PriceLevel) {
	if level.Len() == 0 {
		_, _ = s.levels.Remove(level.price)
	}
}

// snapshot returns every open order resting on this side, ordered from the
// best price outward, each as an immutable Snapshot.
func (s *bookSide) snapshot() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Snapshot
	s.levels.IterateInOrder(func(level *PriceLevel) bool {
		for e := level.orders.Front(); e != nil; e = e.Next() {
			out = append(out, e.Value.Snapshot())
		}
		return false
	})
	return out
}

// bestPrice returns the best price on this side and whether the side is
// non-empty.
func (s *bookSide) bestPrice() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node := s.levels.MostLeft()
	if node == nil {
		return 0, false
	}
	return node.Key(), true
}
