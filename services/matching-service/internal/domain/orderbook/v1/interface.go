package orderbookv1

import "github.com/shopspring/decimal"

// Level is one aggregated price row of book depth.
type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

// BookState is the complete restorable state of a book.
type BookState struct {
	Status          MarketStatus        `json:"status"`
	Sequence        int64               `json:"sequence"`
	LastTradedPrice decimal.NullDecimal `json:"lastTradedPrice"`
	// Orders holds live orders: Working orders in any order, Hidden orders in
	// pending order.
	Orders []Order `json:"orders"`
	// Completed holds terminal orders archived since the latest open, sorted
	// by id. They answer late cancels and order lookups after a restore.
	Completed []Order `json:"completed,omitempty"`
}

// Orderbook defines the matching engine of a single instrument. Every command
// validates, mutates and matches before returning the events it caused.
// Implementations are not safe for concurrent use.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Orderbook interface {
	CreateOrder(cmd CreateOrder) []Event
	UpdateOrder(cmd UpdateOrder) []Event
	CancelOrder(cmd CancelOrder) []Event
	UpdateStatus(cmd UpdateStatus) []Event

	Levels(side Side, maxPrices int) []Level
	Order(orderID string) (Order, bool)
	Status() MarketStatus
	LastTradedPrice() decimal.NullDecimal
	Security() Security

	CreateSnapshot() BookState
	RestoreOrderbook(state BookState) error
}
