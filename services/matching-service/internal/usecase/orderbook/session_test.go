package orderbook

import (
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func status(s orderbookv1.MarketStatus) orderbookv1.UpdateStatus {
	return orderbookv1.UpdateStatus{Symbol: testSymbol, Status: s}
}

func TestOrderbook_UpdateStatus_InvalidTransitionPanics(t *testing.T) {
	testCases := []struct {
		name string
		from orderbookv1.MarketStatus
		to   orderbookv1.MarketStatus
	}{
		{name: "closed to open", from: orderbookv1.MarketStatusClosed, to: orderbookv1.MarketStatusOpen},
		{name: "closed to closed", from: orderbookv1.MarketStatusClosed, to: orderbookv1.MarketStatusClosed},
		{name: "pre-open to closed", from: orderbookv1.MarketStatusPreOpen, to: orderbookv1.MarketStatusClosed},
		{name: "open to open", from: orderbookv1.MarketStatusOpen, to: orderbookv1.MarketStatusOpen},
		{name: "open to pre-open", from: orderbookv1.MarketStatusOpen, to: orderbookv1.MarketStatusPreOpen},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob, _ := newTestBook(t, testSecurity(0), tc.from)
			want := (&orderbookv1.TransitionError{From: tc.from, To: tc.to}).Error()

			assert.PanicsWithError(t, want, func() {
				ob.UpdateStatus(status(tc.to))
			})
			assert.Equal(t, tc.from, ob.Status())
		})
	}
}

func TestOrderbook_UpdateStatus_Cycle(t *testing.T) {
	ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusClosed)

	for _, next := range []orderbookv1.MarketStatus{
		orderbookv1.MarketStatusPreOpen,
		orderbookv1.MarketStatusOpen,
		orderbookv1.MarketStatusClosed,
		orderbookv1.MarketStatusPreOpen,
	} {
		clock.advance(time.Hour)
		events := ob.UpdateStatus(status(next))

		require.Len(t, events, 1)
		changed, ok := events[0].(orderbookv1.StatusChanged)
		require.True(t, ok)
		assert.Equal(t, next, changed.Status)
		assert.Equal(t, clock.now, changed.OccurredAt())
		assert.Equal(t, next, ob.Status())
	}
}

func TestOrderbook_UpdateStatus_OpenUncrossesPreOpenBook(t *testing.T) {
	ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusPreOpen)

	require.Len(t, ob.CreateOrder(limitOrder("b1", orderbookv1.SideBuy, 5, 110)), 1)
	clock.advance(time.Second)
	require.Len(t, ob.CreateOrder(limitOrder("s1", orderbookv1.SideSell, 3, 100)), 1)
	assert.Len(t, ob.Levels(orderbookv1.SideBuy, 0), 1)
	assert.Len(t, ob.Levels(orderbookv1.SideSell, 0), 1)

	clock.advance(15 * time.Minute)
	events := ob.UpdateStatus(status(orderbookv1.MarketStatusOpen))

	require.Equal(t, []orderbookv1.EventType{
		orderbookv1.EventTypeStatusChanged,
		orderbookv1.EventTypeOrdersMatched,
	}, eventTypes(events))
	match := events[1].(orderbookv1.OrdersMatched)
	assertPrice(t, 110, match.Price)
	assert.Equal(t, int64(3), match.Quantity)
	assert.Equal(t, orderbookv1.FillRoleResting, match.Fills[0].Role)
	assert.Equal(t, orderbookv1.FillRoleAggressor, match.Fills[1].Role)

	bids := ob.Levels(orderbookv1.SideBuy, 0)
	require.Len(t, bids, 1)
	assert.Equal(t, int64(2), bids[0].Quantity)
	assert.GreaterOrEqual(t, ob.CreateSnapshot().Sequence, sessionSequence(clock.now))
}

func TestOrderbook_UpdateStatus_OpenTriggersPendingStops(t *testing.T) {
	ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusOpen)
	trade(t, ob, 100)
	require.Len(t, ob.CreateOrder(stopOrder("st1", orderbookv1.SideBuy, 2, px(130), 110)), 1)

	gtc := limitOrder("s1", orderbookv1.SideSell, 2, 120)
	gtc.Validity = orderbookv1.ValidityGoodTilCanceled
	ob.CreateOrder(gtc)
	gtcStop := stopOrder("st2", orderbookv1.SideBuy, 2, px(130), 110)
	gtcStop.Validity = orderbookv1.ValidityGoodTilCanceled
	require.Len(t, ob.CreateOrder(gtcStop), 1)

	clock.advance(time.Hour)
	ob.UpdateStatus(status(orderbookv1.MarketStatusClosed))
	ob.UpdateStatus(status(orderbookv1.MarketStatusPreOpen))

	// Crosses entered during pre-open trade at the open and fire st2.
	ob.CreateOrder(limitOrder("s2", orderbookv1.SideSell, 1, 110))
	ob.CreateOrder(limitOrder("b2", orderbookv1.SideBuy, 1, 110))

	clock.advance(time.Hour)
	events := ob.UpdateStatus(status(orderbookv1.MarketStatusOpen))
	require.Equal(t, []orderbookv1.EventType{
		orderbookv1.EventTypeStatusChanged,
		orderbookv1.EventTypeOrdersMatched,
		orderbookv1.EventTypeOrderTriggered,
		orderbookv1.EventTypeOrdersMatched,
	}, eventTypes(events))

	triggered := events[2].(orderbookv1.OrderTriggered).Order
	assert.Equal(t, "st2", triggered.ID)
	assert.Equal(t, orderbookv1.OrderStatusWorking, triggered.Status)
	assert.Equal(t, clock.now, triggered.ActivatedTime)

	match := events[3].(orderbookv1.OrdersMatched)
	assertPrice(t, 120, match.Price)
	assert.Equal(t, "st2", match.Fills[0].Order.ID)
	assert.Equal(t, orderbookv1.FillRoleAggressor, match.Fills[0].Role)
}

func TestOrderbook_UpdateStatus_CloseExpiresDayOrders(t *testing.T) {
	testCases := []struct {
		name       string
		validity   orderbookv1.Validity
		wantExpire bool
	}{
		{name: "day order expires", validity: orderbookv1.ValidityDay, wantExpire: true},
		{name: "good til canceled survives", validity: orderbookv1.ValidityGoodTilCanceled, wantExpire: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusOpen)
			cmd := limitOrder("b1", orderbookv1.SideBuy, 5, 100)
			cmd.Validity = tc.validity
			ob.CreateOrder(cmd)

			clock.advance(8 * time.Hour)
			events := ob.UpdateStatus(status(orderbookv1.MarketStatusClosed))

			order, ok := ob.Order("b1")
			require.True(t, ok)

			if !tc.wantExpire {
				assert.Equal(t, []orderbookv1.EventType{orderbookv1.EventTypeStatusChanged}, eventTypes(events))
				assert.Equal(t, orderbookv1.OrderStatusWorking, order.Status)
				assert.Equal(t, int64(5), levelQuantity(ob.Levels(orderbookv1.SideBuy, 0)))
				return
			}

			require.Equal(t, []orderbookv1.EventType{
				orderbookv1.EventTypeStatusChanged,
				orderbookv1.EventTypeExpireConfirmed,
			}, eventTypes(events))
			expired := events[1].(orderbookv1.ExpireConfirmed).Order
			assert.Equal(t, orderbookv1.OrderStatusExpired, expired.Status)
			assert.Equal(t, clock.now, expired.CompletedTime)
			assert.Equal(t, orderbookv1.OrderStatusExpired, order.Status)
			assert.Empty(t, ob.Levels(orderbookv1.SideBuy, 0))
		})
	}
}

func TestOrderbook_UpdateStatus_GoodTilCanceledKeepsPriorityAcrossSessions(t *testing.T) {
	ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusOpen)
	gtc := limitOrder("g1", orderbookv1.SideBuy, 5, 100)
	gtc.Validity = orderbookv1.ValidityGoodTilCanceled
	require.Len(t, ob.CreateOrder(gtc), 1)

	clock.advance(8 * time.Hour)
	ob.UpdateStatus(status(orderbookv1.MarketStatusClosed))
	clock.advance(15 * time.Hour)
	ob.UpdateStatus(status(orderbookv1.MarketStatusPreOpen))

	clock.advance(time.Minute)
	require.Len(t, ob.CreateOrder(limitOrder("b2", orderbookv1.SideBuy, 5, 100)), 1)
	require.Len(t, ob.CreateOrder(limitOrder("s1", orderbookv1.SideSell, 5, 100)), 1)

	clock.advance(15 * time.Minute)
	events := ob.UpdateStatus(status(orderbookv1.MarketStatusOpen))
	require.Equal(t, []orderbookv1.EventType{
		orderbookv1.EventTypeStatusChanged,
		orderbookv1.EventTypeOrdersMatched,
	}, eventTypes(events))

	match := events[1].(orderbookv1.OrdersMatched)
	assert.Equal(t, int64(5), match.Quantity)
	assert.Equal(t, "g1", match.Fills[0].Order.ID)
	assert.Equal(t, orderbookv1.FillRoleResting, match.Fills[0].Role)
	assert.Equal(t, orderbookv1.OrderStatusFilled, match.Fills[0].Order.Status)

	order, ok := ob.Order("b2")
	require.True(t, ok)
	assert.Equal(t, orderbookv1.OrderStatusWorking, order.Status)
	assert.Equal(t, int64(5), levelQuantity(ob.Levels(orderbookv1.SideBuy, 0)))
	assert.Equal(t, sessionSequence(clock.now), ob.CreateSnapshot().Sequence)
}

func TestOrderbook_UpdateStatus_CloseExpiryOrder(t *testing.T) {
	ob, _ := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusOpen)
	trade(t, ob, 100)

	ob.CreateOrder(stopOrder("st1", orderbookv1.SideSell, 1, decimal.NullDecimal{}, 80))
	ob.CreateOrder(limitOrder("s1", orderbookv1.SideSell, 1, 120))
	ob.CreateOrder(limitOrder("b1", orderbookv1.SideBuy, 1, 80))
	ob.CreateOrder(limitOrder("b2", orderbookv1.SideBuy, 1, 90))
	gtc := limitOrder("g1", orderbookv1.SideBuy, 1, 70)
	gtc.Validity = orderbookv1.ValidityGoodTilCanceled
	ob.CreateOrder(gtc)

	events := ob.UpdateStatus(status(orderbookv1.MarketStatusClosed))

	var expired []string
	for _, e := range events[1:] {
		expired = append(expired, e.(orderbookv1.ExpireConfirmed).Order.ID)
	}
	assert.Equal(t, []string{"b2", "b1", "s1", "st1"}, expired)

	state := ob.CreateSnapshot()
	require.Len(t, state.Orders, 1)
	assert.Equal(t, "g1", state.Orders[0].ID)
}

func TestSessionSequence(t *testing.T) {
	day := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(20250602)<<32, sessionSequence(day))
	assert.Less(t, sessionSequence(day), sessionSequence(day.AddDate(0, 0, 1)))
}
