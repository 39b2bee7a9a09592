package orderbookv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies an Event on the wire.
type EventType string

const (
	EventTypeCreateConfirmed EventType = "create_confirmed"
	EventTypeCreateRejected  EventType = "create_rejected"
	EventTypeUpdateConfirmed EventType = "update_confirmed"
	EventTypeUpdateRejected  EventType = "update_rejected"
	EventTypeCancelConfirmed EventType = "cancel_confirmed"
	EventTypeCancelRejected  EventType = "cancel_rejected"
	EventTypeExpireConfirmed EventType = "expire_confirmed"
	EventTypeOrderTriggered  EventType = "order_triggered"
	EventTypeOrdersMatched   EventType = "orders_matched"
	EventTypeStatusChanged   EventType = "status_changed"
)

// Event is an externally observable outcome of an Action. The set of
// implementations is closed; switch on the concrete type.
type Event interface {
	Type() EventType
	Instrument() string
	OccurredAt() time.Time
	isEvent()
}

// EventHeader is embedded in every event.
type EventHeader struct {
	Symbol string    `json:"symbol"`
	Time   time.Time `json:"time"`
}

// Instrument returns the symbol the event belongs to.
func (h EventHeader) Instrument() string { return h.Symbol }

// OccurredAt returns when the event happened.
func (h EventHeader) OccurredAt() time.Time { return h.Time }

// CreateConfirmed is emitted when an order is accepted.
type CreateConfirmed struct {
	EventHeader
	Order Order `json:"order"`
}

// CreateRejected is emitted when a create fails validation.
type CreateRejected struct {
	EventHeader
	ClientID string       `json:"clientID"`
	OrderID  string       `json:"orderID"`
	Reason   RejectReason `json:"reason"`
}

// UpdateConfirmed is emitted when an amendment is applied.
type UpdateConfirmed struct {
	EventHeader
	Order Order `json:"order"`
}

// UpdateRejected is emitted when an amendment fails validation.
type UpdateRejected struct {
	EventHeader
	ClientID string       `json:"clientID"`
	OrderID  string       `json:"orderID"`
	Reason   RejectReason `json:"reason"`
}

// CancelConfirmed is emitted when an order is cancelled.
type CancelConfirmed struct {
	EventHeader
	Order        Order        `json:"order"`
	CancelReason CancelReason `json:"cancelReason"`
}

// CancelRejected is emitted when a cancel fails validation.
type CancelRejected struct {
	EventHeader
	ClientID string       `json:"clientID"`
	OrderID  string       `json:"orderID"`
	Reason   RejectReason `json:"reason"`
}

// ExpireConfirmed is emitted for each Day order removed at the close.
type ExpireConfirmed struct {
	EventHeader
	Order Order `json:"order"`
}

// OrderTriggered is emitted when a stop order leaves the pending set and
// enters the book.
type OrderTriggered struct {
	EventHeader
	Order Order `json:"order"`
}

// FillRole tells whether a fill was on the resting or the aggressing order.
type FillRole string

const (
	FillRoleResting   FillRole = "resting"
	FillRoleAggressor FillRole = "aggressor"
)

// Fill is one side of a trade with the post-fill state of its order.
type Fill struct {
	Role  FillRole `json:"role"`
	Order Order    `json:"order"`
}

// OrdersMatched is emitted once per crossing iteration. Fills holds the buy
// side first, then the sell side.
type OrdersMatched struct {
	EventHeader
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Fills    []Fill          `json:"fills"`
}

// StatusChanged is emitted on every market status transition.
type StatusChanged struct {
	EventHeader
	Status MarketStatus `json:"status"`
}

func (CreateConfirmed) Type() EventType { return EventTypeCreateConfirmed }
func (CreateRejected) Type() EventType  { return EventTypeCreateRejected }
func (UpdateConfirmed) Type() EventType { return EventTypeUpdateConfirmed }
func (UpdateRejected) Type() EventType  { return EventTypeUpdateRejected }
func (CancelConfirmed) Type() EventType { return EventTypeCancelConfirmed }
func (CancelRejected) Type() EventType  { return EventTypeCancelRejected }
func (ExpireConfirmed) Type() EventType { return EventTypeExpireConfirmed }
func (OrderTriggered) Type() EventType  { return EventTypeOrderTriggered }
func (OrdersMatched) Type() EventType   { return EventTypeOrdersMatched }
func (StatusChanged) Type() EventType   { return EventTypeStatusChanged }

func (CreateConfirmed) isEvent() {}
func (CreateRejected) isEvent()  {}
func (UpdateConfirmed) isEvent() {}
func (UpdateRejected) isEvent()  {}
func (CancelConfirmed) isEvent() {}
func (CancelRejected) isEvent()  {}
func (ExpireConfirmed) isEvent() {}
func (OrderTriggered) isEvent()  {}
func (OrdersMatched) isEvent()   {}
func (StatusChanged) isEvent()   {}
