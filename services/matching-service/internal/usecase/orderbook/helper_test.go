package orderbook

import (
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymbol = "BBCA"

var testStart = time.Date(2025, time.June, 2, 8, 45, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testSecurity(protectionTicks int64) orderbookv1.Security {
	return orderbookv1.Security{
		Symbol:          testSymbol,
		Kind:            "equity",
		TickSize:        decimal.NewFromInt(10),
		ProtectionTicks: protectionTicks,
	}
}

// newTestBook returns a book walked from Closed to status.
func newTestBook(t require.TestingT, security orderbookv1.Security, status orderbookv1.MarketStatus) (*Orderbook, *fakeClock) {
	clock := &fakeClock{now: testStart}
	ob := NewOrderbook(security, clock)

	path := map[orderbookv1.MarketStatus][]orderbookv1.MarketStatus{
		orderbookv1.MarketStatusClosed:  nil,
		orderbookv1.MarketStatusPreOpen: {orderbookv1.MarketStatusPreOpen},
		orderbookv1.MarketStatusOpen:    {orderbookv1.MarketStatusPreOpen, orderbookv1.MarketStatusOpen},
	}
	for _, next := range path[status] {
		events := ob.UpdateStatus(orderbookv1.UpdateStatus{Symbol: testSymbol, Status: next})
		require.NotEmpty(t, events)
	}
	return ob, clock
}

func px(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func qty(v int64) *int64 {
	return &v
}

func limitOrder(orderID string, side orderbookv1.Side, quantity, price int64) orderbookv1.CreateOrder {
	return orderbookv1.CreateOrder{
		Symbol:   testSymbol,
		ClientID: "client-1",
		OrderID:  orderID,
		Validity: orderbookv1.ValidityDay,
		Side:     side,
		Quantity: quantity,
		Price:    px(price),
	}
}

func marketOrder(orderID string, side orderbookv1.Side, quantity int64) orderbookv1.CreateOrder {
	return orderbookv1.CreateOrder{
		Symbol:   testSymbol,
		ClientID: "client-1",
		OrderID:  orderID,
		Validity: orderbookv1.ValidityDay,
		Side:     side,
		Quantity: quantity,
	}
}

func stopOrder(orderID string, side orderbookv1.Side, quantity int64, price decimal.NullDecimal, trigger int64) orderbookv1.CreateOrder {
	return orderbookv1.CreateOrder{
		Symbol:       testSymbol,
		ClientID:     "client-1",
		OrderID:      orderID,
		Validity:     orderbookv1.ValidityDay,
		Side:         side,
		Quantity:     quantity,
		Price:        price,
		TriggerPrice: px(trigger),
	}
}

// trade drives a one-lot cross at price so the book has a last traded price.
func trade(t require.TestingT, ob *Orderbook, price int64) {
	ob.CreateOrder(limitOrder("seed-sell", orderbookv1.SideSell, 1, price))
	events := ob.CreateOrder(limitOrder("seed-buy", orderbookv1.SideBuy, 1, price))
	require.Len(t, events, 2)
	require.IsType(t, orderbookv1.OrdersMatched{}, events[1])
}

func eventTypes(events []orderbookv1.Event) []orderbookv1.EventType {
	types := make([]orderbookv1.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type())
	}
	return types
}

func levelQuantity(levels []orderbookv1.Level) int64 {
	var total int64
	for _, l := range levels {
		total += l.Quantity
	}
	return total
}

func assertPrice(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "price %s, want %d", got, want)
}
