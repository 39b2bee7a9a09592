package orderbookv1

import "github.com/shopspring/decimal"

// ActionType identifies an Action on the wire.
type ActionType string

const (
	ActionTypeCreateOrder  ActionType = "create_order"
	ActionTypeUpdateOrder  ActionType = "update_order"
	ActionTypeCancelOrder  ActionType = "cancel_order"
	ActionTypeUpdateStatus ActionType = "update_status"
)

// Action is a command addressed to the book of one instrument. The set of
// implementations is closed: CreateOrder, UpdateOrder, CancelOrder and
// UpdateStatus.
type Action interface {
	Type() ActionType
	Instrument() string
	isAction()
}

// CreateOrder submits a new order. A missing Price makes it a market order,
// a TriggerPrice makes it a stop order.
type CreateOrder struct {
	Symbol       string              `json:"symbol"`
	ClientID     string              `json:"clientID"`
	OrderID      string              `json:"orderID"`
	Validity     Validity            `json:"validity"`
	Side         Side                `json:"side"`
	Quantity     int64               `json:"quantity"`
	Price        decimal.NullDecimal `json:"price"`
	TriggerPrice decimal.NullDecimal `json:"triggerPrice"`
}

// UpdateOrder amends quantity, price or trigger price of a live order. Nil or
// invalid fields are left untouched.
type UpdateOrder struct {
	Symbol       string              `json:"symbol"`
	ClientID     string              `json:"clientID"`
	OrderID      string              `json:"orderID"`
	Quantity     *int64              `json:"quantity,omitempty"`
	Price        decimal.NullDecimal `json:"price"`
	TriggerPrice decimal.NullDecimal `json:"triggerPrice"`
}

// CancelOrder removes a live order.
type CancelOrder struct {
	Symbol   string `json:"symbol"`
	ClientID string `json:"clientID"`
	OrderID  string `json:"orderID"`
}

// UpdateStatus moves the market to the next session state.
type UpdateStatus struct {
	Symbol string       `json:"symbol"`
	Status MarketStatus `json:"status"`
}

func (CreateOrder) Type() ActionType  { return ActionTypeCreateOrder }
func (UpdateOrder) Type() ActionType  { return ActionTypeUpdateOrder }
func (CancelOrder) Type() ActionType  { return ActionTypeCancelOrder }
func (UpdateStatus) Type() ActionType { return ActionTypeUpdateStatus }

func (a CreateOrder) Instrument() string  { return a.Symbol }
func (a UpdateOrder) Instrument() string  { return a.Symbol }
func (a CancelOrder) Instrument() string  { return a.Symbol }
func (a UpdateStatus) Instrument() string { return a.Symbol }

func (CreateOrder) isAction()  {}
func (UpdateOrder) isAction()  {}
func (CancelOrder) isAction()  {}
func (UpdateStatus) isAction() {}
