package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// CreateOrder validates and enters a new order, then matches it when the
// market is open.
func (ob *Orderbook) CreateOrder(cmd orderbookv1.CreateOrder) []orderbookv1.Event {
	now := ob.clock.Now()

	in := createInput{
		cmd: cmd,
		terms: stopTerms{
			kind:    orderbookv1.InferKind(cmd.Price, cmd.TriggerPrice),
			side:    cmd.Side,
			price:   cmd.Price,
			trigger: cmd.TriggerPrice,
		},
	}
	if reason, ok := validate(ob, in, createRules); !ok {
		return []orderbookv1.Event{orderbookv1.CreateRejected{
			EventHeader: ob.header(now),
			ClientID:    cmd.ClientID,
			OrderID:     cmd.OrderID,
			Reason:      reason,
		}}
	}

	order := orderbookv1.NewOrder(cmd, now)
	h := ob.admit(order)

	if order.Status == orderbookv1.OrderStatusHidden {
		ob.park(h)
		return []orderbookv1.Event{orderbookv1.CreateConfirmed{EventHeader: ob.header(now), Order: order.Snapshot()}}
	}

	if order.Kind == orderbookv1.OrderKindMarket {
		order.Price = ob.marketPrice(order.Side)
	}
	ob.rest(h)

	events := []orderbookv1.Event{orderbookv1.CreateConfirmed{EventHeader: ob.header(now), Order: order.Snapshot()}}
	if ob.status == orderbookv1.MarketStatusOpen {
		events = append(events, ob.cross(now)...)
	}

	// Whatever is left of a market order rests as a limit at its synthetic price.
	if order.Kind == orderbookv1.OrderKindMarket && order.Status == orderbookv1.OrderStatusWorking {
		order.Kind = orderbookv1.OrderKindLimit
	}
	return events
}

// UpdateOrder amends a live order. Shrinking quantity keeps time priority;
// a price change or a quantity increase sends the order to the back of its
// level.
func (ob *Orderbook) UpdateOrder(cmd orderbookv1.UpdateOrder) []orderbookv1.Event {
	now := ob.clock.Now()

	reject := func(reason orderbookv1.RejectReason) []orderbookv1.Event {
		return []orderbookv1.Event{orderbookv1.UpdateRejected{
			EventHeader: ob.header(now),
			ClientID:    cmd.ClientID,
			OrderID:     cmd.OrderID,
			Reason:      reason,
		}}
	}

	if !notClosed(ob) {
		return reject(orderbookv1.RejectReasonMarketClosed)
	}
	h, reason, ok := ob.lookup(cmd.ClientID, cmd.OrderID)
	if !ok {
		return reject(reason)
	}
	order := ob.arena[h]
	in := newUpdateInput(cmd, order)
	if reason, ok := validate(ob, in, updateRules); !ok {
		return reject(reason)
	}

	if cmd.Quantity != nil && *cmd.Quantity <= order.Filled {
		ob.detach(h)
		order.CancelAtFilled(now)
		return []orderbookv1.Event{orderbookv1.CancelConfirmed{
			EventHeader:  ob.header(now),
			Order:        ob.archive(h),
			CancelReason: orderbookv1.CancelReasonUpdatedQuantityLowerThanFilledQuantity,
		}}
	}

	priceChanged := cmd.Price.Valid && (!order.Price.Valid || !cmd.Price.Decimal.Equal(order.Price.Decimal))
	triggerChanged := in.hidden() && cmd.TriggerPrice.Valid && !cmd.TriggerPrice.Decimal.Equal(order.TriggerPrice.Decimal)
	increased := cmd.Quantity != nil && *cmd.Quantity > order.Quantity
	requeue := priceChanged || triggerChanged || increased

	if requeue {
		ob.detach(h)
	}
	if cmd.Quantity != nil {
		order.SetQuantity(*cmd.Quantity)
	}
	if priceChanged {
		order.Price = cmd.Price
	}
	if triggerChanged {
		order.TriggerPrice = cmd.TriggerPrice
	}
	if in.hidden() {
		order.Kind = in.terms.kind
	}
	if requeue {
		order.ModifiedTime = now
		if in.hidden() {
			ob.park(h)
		} else {
			ob.rest(h)
		}
	}

	events := []orderbookv1.Event{orderbookv1.UpdateConfirmed{EventHeader: ob.header(now), Order: order.Snapshot()}}
	if priceChanged && !in.hidden() && ob.status == orderbookv1.MarketStatusOpen {
		events = append(events, ob.cross(now)...)
	}
	return events
}

// CancelOrder removes a live order from the book or the pending stop list.
func (ob *Orderbook) CancelOrder(cmd orderbookv1.CancelOrder) []orderbookv1.Event {
	now := ob.clock.Now()

	reject := func(reason orderbookv1.RejectReason) []orderbookv1.Event {
		return []orderbookv1.Event{orderbookv1.CancelRejected{
			EventHeader: ob.header(now),
			ClientID:    cmd.ClientID,
			OrderID:     cmd.OrderID,
			Reason:      reason,
		}}
	}

	if !notClosed(ob) {
		return reject(orderbookv1.RejectReasonMarketClosed)
	}
	h, reason, ok := ob.lookup(cmd.ClientID, cmd.OrderID)
	if !ok {
		return reject(reason)
	}

	ob.detach(h)
	ob.arena[h].Cancel(now)
	return []orderbookv1.Event{orderbookv1.CancelConfirmed{
		EventHeader:  ob.header(now),
		Order:        ob.archive(h),
		CancelReason: orderbookv1.CancelReasonRequested,
	}}
}
