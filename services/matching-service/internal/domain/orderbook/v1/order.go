package orderbookv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the lifecycle record of a single order. The book owns the live
// instance; events carry value copies.
type Order struct {
	ID       string    `json:"orderID"`
	ClientID string    `json:"clientID"`
	Kind     OrderKind `json:"kind"`
	Validity Validity  `json:"validity"`
	Side     Side      `json:"side"`

	Price        decimal.NullDecimal `json:"price"`
	TriggerPrice decimal.NullDecimal `json:"triggerPrice"`

	Quantity  int64 `json:"quantity"`
	Filled    int64 `json:"filled"`
	Remaining int64 `json:"remaining"`

	CreatedTime   time.Time `json:"createdTime"`
	ModifiedTime  time.Time `json:"modifiedTime"`
	CompletedTime time.Time `json:"completedTime"`
	// ActivatedTime is when the order became matchable: the created time, or
	// the trigger time for stop orders. Earlier activation makes the maker.
	ActivatedTime time.Time `json:"activatedTime"`

	Status   OrderStatus `json:"status"`
	Sequence int64       `json:"sequence"`
}

// NewOrder creates a Hidden or Working order from a create command. The kind is
// inferred from which prices are present.
func NewOrder(cmd CreateOrder, now time.Time) *Order {
	order := &Order{
		ID:           cmd.OrderID,
		ClientID:     cmd.ClientID,
		Kind:         InferKind(cmd.Price, cmd.TriggerPrice),
		Validity:     cmd.Validity,
		Side:         cmd.Side,
		Price:        cmd.Price,
		TriggerPrice: cmd.TriggerPrice,
		Quantity:     cmd.Quantity,
		Remaining:    cmd.Quantity,
		CreatedTime:  now,
		ModifiedTime: now,
		Status:       OrderStatusWorking,
	}
	if order.Kind.IsStop() {
		order.Status = OrderStatusHidden
	} else {
		order.ActivatedTime = now
	}
	return order
}

// InferKind maps the presence of limit and trigger prices to an order kind.
func InferKind(price, trigger decimal.NullDecimal) OrderKind {
	switch {
	case trigger.Valid && price.Valid:
		return OrderKindStopLimit
	case trigger.Valid:
		return OrderKindStopMarket
	case price.Valid:
		return OrderKindLimit
	default:
		return OrderKindMarket
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsFilled checks if nothing remains to trade.
func (o *Order) IsFilled() bool {
	return o.Remaining == 0
}

// Fill trades qty off the order, completing it when nothing remains.
func (o *Order) Fill(qty int64, now time.Time) {
	o.Filled += qty
	o.Remaining = o.Quantity - o.Filled
	if o.Remaining == 0 {
		o.complete(OrderStatusFilled, now)
	}
}

// SetQuantity changes the original quantity and recomputes what remains.
func (o *Order) SetQuantity(qty int64) {
	o.Quantity = qty
	o.Remaining = o.Quantity - o.Filled
}

// Cancel completes the order as Cancelled.
func (o *Order) Cancel(now time.Time) {
	o.complete(OrderStatusCancelled, now)
}

// CancelAtFilled shrinks the order to what already traded and cancels it.
func (o *Order) CancelAtFilled(now time.Time) {
	o.SetQuantity(o.Filled)
	o.complete(OrderStatusCancelled, now)
}

// Expire completes the order as Expired.
func (o *Order) Expire(now time.Time) {
	o.complete(OrderStatusExpired, now)
}

func (o *Order) complete(status OrderStatus, now time.Time) {
	if o.Status.IsTerminal() {
		return
	}
	o.Status = status
	o.CompletedTime = now
}

// Snapshot returns an immutable copy for events.
func (o *Order) Snapshot() Order {
	return *o
}
