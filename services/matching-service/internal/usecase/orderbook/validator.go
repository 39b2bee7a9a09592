package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// rule is one validation predicate. valid must not mutate the book.
type rule[T any] struct {
	reason orderbookv1.RejectReason
	valid  func(ob *Orderbook, in T) bool
}

// validate runs rules in order and returns the reason of the first failure.
func validate[T any](ob *Orderbook, in T, rules []rule[T]) (orderbookv1.RejectReason, bool) {
	for _, r := range rules {
		if !r.valid(ob, in) {
			return r.reason, false
		}
	}
	return "", true
}

// stopTerms is the price shape of an order checked by the stop rules.
type stopTerms struct {
	kind    orderbookv1.OrderKind
	side    orderbookv1.Side
	price   decimal.NullDecimal
	trigger decimal.NullDecimal
}

func (t stopTerms) triggerBelowPrice() bool {
	if t.kind != orderbookv1.OrderKindStopLimit || t.side != orderbookv1.SideBuy {
		return true
	}
	return t.trigger.Decimal.LessThanOrEqual(t.price.Decimal)
}

func (t stopTerms) triggerAbovePrice() bool {
	if t.kind != orderbookv1.OrderKindStopLimit || t.side != orderbookv1.SideSell {
		return true
	}
	return t.trigger.Decimal.GreaterThanOrEqual(t.price.Decimal)
}

func (t stopTerms) hasReference(last decimal.NullDecimal) bool {
	return !t.kind.IsStop() || last.Valid
}

func (t stopTerms) triggerAboveLast(last decimal.NullDecimal) bool {
	if !t.kind.IsStop() || t.side != orderbookv1.SideBuy {
		return true
	}
	return t.trigger.Decimal.GreaterThan(last.Decimal)
}

func (t stopTerms) triggerBelowLast(last decimal.NullDecimal) bool {
	if !t.kind.IsStop() || t.side != orderbookv1.SideSell {
		return true
	}
	return t.trigger.Decimal.LessThan(last.Decimal)
}

func onTickIfSet(security orderbookv1.Security, prices ...decimal.NullDecimal) bool {
	for _, p := range prices {
		if p.Valid && !security.OnTick(p.Decimal) {
			return false
		}
	}
	return true
}

func notClosed(ob *Orderbook) bool {
	return ob.status != orderbookv1.MarketStatusClosed
}

type createInput struct {
	cmd   orderbookv1.CreateOrder
	terms stopTerms
}

var createRules = []rule[createInput]{
	{orderbookv1.RejectReasonInvalidSide, func(ob *Orderbook, in createInput) bool {
		return in.cmd.Side.IsValid()
	}},
	{orderbookv1.RejectReasonInvalidValidity, func(ob *Orderbook, in createInput) bool {
		return in.cmd.Validity.IsValid()
	}},
	{orderbookv1.RejectReasonMarketClosed, func(ob *Orderbook, in createInput) bool {
		return notClosed(ob)
	}},
	{orderbookv1.RejectReasonMarketPreOpen, func(ob *Orderbook, in createInput) bool {
		return !(ob.status == orderbookv1.MarketStatusPreOpen && in.terms.kind == orderbookv1.OrderKindMarket)
	}},
	{orderbookv1.RejectReasonInvalidQuantity, func(ob *Orderbook, in createInput) bool {
		return in.cmd.Quantity >= 1
	}},
	{orderbookv1.RejectReasonInvalidPriceIncrement, func(ob *Orderbook, in createInput) bool {
		return onTickIfSet(ob.security, in.cmd.Price, in.cmd.TriggerPrice)
	}},
	{orderbookv1.RejectReasonOrderInBook, func(ob *Orderbook, in createInput) bool {
		_, live := ob.index[in.cmd.OrderID]
		return !live
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeLessThanPrice, func(ob *Orderbook, in createInput) bool {
		return in.terms.triggerBelowPrice()
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeGreaterThanPrice, func(ob *Orderbook, in createInput) bool {
		return in.terms.triggerAbovePrice()
	}},
	{orderbookv1.RejectReasonNoLastTradedPrice, func(ob *Orderbook, in createInput) bool {
		return in.terms.hasReference(ob.lastTrade)
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeGreaterThanLastTradedPrice, func(ob *Orderbook, in createInput) bool {
		return in.terms.triggerAboveLast(ob.lastTrade)
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeLessThanLastTradedPrice, func(ob *Orderbook, in createInput) bool {
		return in.terms.triggerBelowLast(ob.lastTrade)
	}},
	{orderbookv1.RejectReasonNoOrdersToMatchMarketOrder, func(ob *Orderbook, in createInput) bool {
		return in.terms.kind != orderbookv1.OrderKindMarket || !ob.side(in.cmd.Side.Opposite()).isEmpty()
	}},
}

// updateInput carries the amendment merged over the current order.
type updateInput struct {
	cmd   orderbookv1.UpdateOrder
	order *orderbookv1.Order
	terms stopTerms
}

func (in updateInput) hidden() bool {
	return in.order.Status == orderbookv1.OrderStatusHidden
}

func (in updateInput) changes() bool {
	if in.cmd.Quantity != nil && *in.cmd.Quantity != in.order.Quantity {
		return true
	}
	if in.cmd.Price.Valid && (!in.order.Price.Valid || !in.cmd.Price.Decimal.Equal(in.order.Price.Decimal)) {
		return true
	}
	return in.hidden() && in.cmd.TriggerPrice.Valid && !in.cmd.TriggerPrice.Decimal.Equal(in.order.TriggerPrice.Decimal)
}

// updateRules run after the order has been found live.
var updateRules = []rule[updateInput]{
	{orderbookv1.RejectReasonInvalidQuantity, func(ob *Orderbook, in updateInput) bool {
		return in.cmd.Quantity == nil || *in.cmd.Quantity >= 1
	}},
	{orderbookv1.RejectReasonInvalidPriceIncrement, func(ob *Orderbook, in updateInput) bool {
		// a trigger only applies to an untriggered stop
		return onTickIfSet(ob.security, in.cmd.Price) && (!in.hidden() || onTickIfSet(ob.security, in.cmd.TriggerPrice))
	}},
	{orderbookv1.RejectReasonNoChange, func(ob *Orderbook, in updateInput) bool {
		return in.changes()
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeLessThanPrice, func(ob *Orderbook, in updateInput) bool {
		return !in.hidden() || in.terms.triggerBelowPrice()
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeGreaterThanPrice, func(ob *Orderbook, in updateInput) bool {
		return !in.hidden() || in.terms.triggerAbovePrice()
	}},
	{orderbookv1.RejectReasonNoLastTradedPrice, func(ob *Orderbook, in updateInput) bool {
		return !in.hidden() || in.terms.hasReference(ob.lastTrade)
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeGreaterThanLastTradedPrice, func(ob *Orderbook, in updateInput) bool {
		return !in.hidden() || in.terms.triggerAboveLast(ob.lastTrade)
	}},
	{orderbookv1.RejectReasonTriggerPriceMustBeLessThanLastTradedPrice, func(ob *Orderbook, in updateInput) bool {
		return !in.hidden() || in.terms.triggerBelowLast(ob.lastTrade)
	}},
}

func newUpdateInput(cmd orderbookv1.UpdateOrder, order *orderbookv1.Order) updateInput {
	terms := stopTerms{
		kind:    order.Kind,
		side:    order.Side,
		price:   order.Price,
		trigger: order.TriggerPrice,
	}
	if order.Status == orderbookv1.OrderStatusHidden {
		if cmd.Price.Valid {
			terms.price = cmd.Price
			terms.kind = orderbookv1.OrderKindStopLimit
		}
		if cmd.TriggerPrice.Valid {
			terms.trigger = cmd.TriggerPrice
		}
	}
	return updateInput{cmd: cmd, order: order, terms: terms}
}
