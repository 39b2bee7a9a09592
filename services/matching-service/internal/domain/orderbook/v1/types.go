package orderbookv1

// Side represents the side of an order.
type Side string

const (
	// SideBuy represents a bid.
	SideBuy Side = "buy"
	// SideSell represents an ask.
	SideSell Side = "sell"
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// IsValid reports whether s is a known side.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// OrderKind represents the type of order.
type OrderKind string

const (
	// OrderKindLimit rests at its own price.
	OrderKindLimit OrderKind = "limit"
	// OrderKindMarket is priced from the opposite side at entry.
	OrderKindMarket OrderKind = "market"
	// OrderKindStopLimit becomes a limit order once triggered.
	OrderKindStopLimit OrderKind = "stop_limit"
	// OrderKindStopMarket becomes a protected market order once triggered.
	OrderKindStopMarket OrderKind = "stop_market"
)

// IsStop reports whether the kind waits on a trigger price.
func (k OrderKind) IsStop() bool {
	return k == OrderKindStopLimit || k == OrderKindStopMarket
}

// Validity represents the lifetime policy of an order.
type Validity string

const (
	// ValidityDay orders expire when the market closes.
	ValidityDay Validity = "day"
	// ValidityGoodTilCanceled orders survive market closes.
	ValidityGoodTilCanceled Validity = "gtc"
)

// IsValid reports whether v is a known validity.
func (v Validity) IsValid() bool {
	return v == ValidityDay || v == ValidityGoodTilCanceled
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusHidden is an untriggered stop order.
	OrderStatusHidden OrderStatus = "hidden"
	// OrderStatusWorking is live and matchable.
	OrderStatusWorking OrderStatus = "working"
	// OrderStatusFilled is terminal.
	OrderStatusFilled OrderStatus = "filled"
	// OrderStatusCancelled is terminal.
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusExpired is terminal.
	OrderStatusExpired OrderStatus = "expired"
)

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusExpired:
		return true
	default:
		return false
	}
}

// IsLive reports whether the order is still owned by the book.
func (s OrderStatus) IsLive() bool {
	return s == OrderStatusHidden || s == OrderStatusWorking
}
