package marketdatav1

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Depth is the visible book after a command batch.
type Depth struct {
	Symbol          string                   `json:"symbol"`
	Status          orderbookv1.MarketStatus `json:"status"`
	LastTradedPrice decimal.NullDecimal      `json:"lastTradedPrice"`
	Bids            []orderbookv1.Level      `json:"bids"`
	Asks            []orderbookv1.Level      `json:"asks"`
	Time            time.Time                `json:"time"`
}

// DepthOf reads at most maxPrices levels per side from book.
func DepthOf(book orderbookv1.Orderbook, maxPrices int, now time.Time) Depth {
	return Depth{
		Symbol:          book.Security().Symbol,
		Status:          book.Status(),
		LastTradedPrice: book.LastTradedPrice(),
		Bids:            book.Levels(orderbookv1.SideBuy, maxPrices),
		Asks:            book.Levels(orderbookv1.SideSell, maxPrices),
		Time:            now,
	}
}
