package orderbook

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// cross matches the best bid against the best ask until the book no longer
// crosses. The resting order sets the trade price. Stops are evaluated after
// every trade and triggered ones join the loop immediately.
func (ob *Orderbook) cross(now time.Time) []orderbookv1.Event {
	var events []orderbookv1.Event
	for {
		bh, ok := ob.bids.best()
		if !ok {
			break
		}
		ah, ok := ob.asks.best()
		if !ok {
			break
		}

		buy, sell := ob.arena[bh], ob.arena[ah]
		if buy.Price.Decimal.LessThan(sell.Price.Decimal) {
			break
		}

		buyRole, sellRole := orderbookv1.FillRoleAggressor, orderbookv1.FillRoleResting
		price := sell.Price.Decimal
		if rests(buy, sell) {
			buyRole, sellRole = orderbookv1.FillRoleResting, orderbookv1.FillRoleAggressor
			price = buy.Price.Decimal
		}
		qty := min(buy.Remaining, sell.Remaining)

		buy.Fill(qty, now)
		sell.Fill(qty, now)
		match := orderbookv1.OrdersMatched{
			EventHeader: ob.header(now),
			Price:       price,
			Quantity:    qty,
			Fills: []orderbookv1.Fill{
				{Role: buyRole, Order: buy.Snapshot()},
				{Role: sellRole, Order: sell.Snapshot()},
			},
		}
		for _, h := range []handle{bh, ah} {
			if ob.arena[h].IsFilled() {
				ob.unrest(h)
				ob.archive(h)
			}
		}

		ob.lastTrade = decimal.NewNullDecimal(price)
		events = append(events, match)
		events = append(events, ob.triggerStops(price, now)...)
	}
	return events
}

// rests reports whether a was active in the book before b.
func rests(a, b *orderbookv1.Order) bool {
	if !a.ActivatedTime.Equal(b.ActivatedTime) {
		return a.ActivatedTime.Before(b.ActivatedTime)
	}
	return a.Sequence < b.Sequence
}

// triggered reports whether a trade at price fires the stop order.
func triggered(order *orderbookv1.Order, price decimal.Decimal) bool {
	if order.IsBid() {
		return price.GreaterThanOrEqual(order.TriggerPrice.Decimal)
	}
	return price.LessThanOrEqual(order.TriggerPrice.Decimal)
}

// triggerStops moves every pending stop fired by price into the book, in
// pending order.
func (ob *Orderbook) triggerStops(price decimal.Decimal, now time.Time) []orderbookv1.Event {
	var fired, kept []handle
	for _, h := range ob.pending {
		if triggered(ob.arena[h], price) {
			fired = append(fired, h)
			continue
		}
		kept = append(kept, h)
	}
	if len(fired) == 0 {
		return nil
	}
	ob.pending = kept

	events := make([]orderbookv1.Event, 0, len(fired))
	for _, h := range fired {
		order := ob.arena[h]
		if order.Kind == orderbookv1.OrderKindStopMarket {
			order.Price = ob.marketPrice(order.Side)
		}
		order.Status = orderbookv1.OrderStatusWorking
		order.ActivatedTime = now
		order.ModifiedTime = now
		ob.rest(h)
		events = append(events, orderbookv1.OrderTriggered{EventHeader: ob.header(now), Order: order.Snapshot()})
	}
	return events
}

// marketPrice synthesizes a limit price for a market order on side. With
// protection configured it is the best opposite price moved by the protection
// distance; without, the worst opposite price. The last traded price stands in
// for an empty opposite side.
func (ob *Orderbook) marketPrice(side orderbookv1.Side) decimal.NullDecimal {
	opposite := ob.side(side.Opposite())

	if !ob.security.HasProtection() {
		if worst, ok := opposite.worstPrice(); ok {
			return decimal.NewNullDecimal(worst)
		}
		return ob.lastTrade
	}

	reference, ok := opposite.bestPrice()
	if !ok {
		if !ob.lastTrade.Valid {
			return decimal.NullDecimal{}
		}
		reference = ob.lastTrade.Decimal
	}

	distance := ob.security.ProtectionDistance()
	if side == orderbookv1.SideBuy {
		return decimal.NewNullDecimal(reference.Add(distance))
	}
	price := reference.Sub(distance)
	if price.LessThan(ob.security.TickSize) {
		price = ob.security.TickSize
	}
	return decimal.NewNullDecimal(price)
}
