package orderbookv1

// RejectReason is the business reason carried by a rejection event.
type RejectReason string

const (
	RejectReasonInvalidSide                                  RejectReason = "invalid_side"
	RejectReasonInvalidValidity                              RejectReason = "invalid_validity"
	RejectReasonMarketClosed                                 RejectReason = "market_closed"
	RejectReasonMarketPreOpen                                RejectReason = "market_pre_open"
	RejectReasonInvalidQuantity                              RejectReason = "invalid_quantity"
	RejectReasonInvalidPriceIncrement                        RejectReason = "invalid_price_increment"
	RejectReasonOrderNotInBook                               RejectReason = "order_not_in_book"
	RejectReasonOrderInBook                                  RejectReason = "order_in_book"
	RejectReasonTooLateToCancel                              RejectReason = "too_late_to_cancel"
	RejectReasonNoChange                                     RejectReason = "no_change"
	RejectReasonNoOrdersToMatchMarketOrder                   RejectReason = "no_orders_to_match_market_order"
	RejectReasonNoLastTradedPrice                            RejectReason = "no_last_traded_price"
	RejectReasonTriggerPriceMustBeLessThanPrice              RejectReason = "trigger_price_must_be_less_than_price"
	RejectReasonTriggerPriceMustBeGreaterThanPrice           RejectReason = "trigger_price_must_be_greater_than_price"
	RejectReasonTriggerPriceMustBeLessThanLastTradedPrice    RejectReason = "trigger_price_must_be_less_than_last_traded_price"
	RejectReasonTriggerPriceMustBeGreaterThanLastTradedPrice RejectReason = "trigger_price_must_be_greater_than_last_traded_price"
)

// CancelReason explains why an order was cancelled.
type CancelReason string

const (
	// CancelReasonRequested is an explicit client cancel.
	CancelReasonRequested CancelReason = "requested"
	// CancelReasonUpdatedQuantityLowerThanFilledQuantity is an amend that shrank
	// the order to or below what already traded.
	CancelReasonUpdatedQuantityLowerThanFilledQuantity CancelReason = "updated_quantity_lower_than_filled_quantity"
)
