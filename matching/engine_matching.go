package matching

import "time"

// match repeatedly crosses the best bid against the best ask while the
// book is crossed, producing trades until the spread uncrosses or either
// side empties. It follows price-time priority: only the resting head of
// each side's best level ever participates, so a partially filled order
// keeps its place at the front of the queue until it is either fully
// filled or removed.
//
// Both book sides are held locked for the entire pass, matching the
// original single-pass matchOrders design: the crossing loop must see a
// consistent view of both books, and holding the locks end-to-end is what
// makes the dispatcher's deferred, lock-free delivery of the resulting
// trades safe.
func (e *Engine) match() []Trade {
	e.bids.mu.Lock()
	defer e.bids.mu.Unlock()
	e.asks.mu.Lock()
	defer e.asks.mu.Unlock()

	var trades []Trade
	now := time.Now()

	for {
		bidNode := e.bids.levels.MostLeft()
		askNode := e.asks.levels.MostLeft()
		if bidNode == nil || askNode == nil {
			break
		}

		bidLevel := bidNode.Value()
		askLevel := askNode.Value()

		if bidLevel.Len() == 0 {
			_, _ = e.bids.levels.Remove(bidLevel.price)
			continue
		}
		if askLevel.Len() == 0 {
			_, _ = e.asks.levels.Remove(askLevel.price)
			continue
		}
		if bidLevel.price < askLevel.price {
			break
		}

		buyOrder := bidLevel.Front()
		sellOrder := askLevel.Front()

		tradeQty := buyOrder.quantity
		if sellOrder.quantity < tradeQty {
			tradeQty = sellOrder.quantity
		}
		tradePrice := sellOrder.price

		trade := Trade{
			BuyOrderID:  buyOrder.id,
			SellOrderID: sellOrder.id,
			Price:       tradePrice,
			Quantity:    tradeQty,
			Timestamp:   now,
		}
		e.history.append(trade)
		trades = append(trades, trade)

		buyOrder.quantity -= tradeQty
		sellOrder.quantity -= tradeQty

		if buyOrder.quantity == 0 {
			buyOrder.status = OrderStatusFilled
			bidLevel.popFront()
			e.reg.finalize(buyOrder.id, OrderStatusFilled)
			_ = e.pool.Release(buyOrder.ref)
		}
		if sellOrder.quantity == 0 {
			sellOrder.status = OrderStatusFilled
			askLevel.popFront()
			e.reg.finalize(sellOrder.id, OrderStatusFilled)
			_ = e.pool.Release(sellOrder.ref)
		}

		e.bids.eraseIfEmpty(bidLevel)
		e.asks.eraseIfEmpty(askLevel)
	}

	return trades
}
