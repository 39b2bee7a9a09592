package orderbook

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

var propertyOrderIDs = []string{"o1", "o2", "o3", "o4", "o5", "o6", "o7", "o8"}

type step struct {
	action  orderbookv1.Action
	advance time.Duration
}

func priceGen() *rapid.Generator[decimal.NullDecimal] {
	return rapid.Custom(func(t *rapid.T) decimal.NullDecimal {
		return px(rapid.Int64Range(8, 12).Draw(t, "ticks") * 10)
	})
}

func maybePrice(t *rapid.T, label string) decimal.NullDecimal {
	if rapid.Bool().Draw(t, label+"Set") {
		return priceGen().Draw(t, label)
	}
	return decimal.NullDecimal{}
}

func stepGen() *rapid.Generator[step] {
	return rapid.Custom(func(t *rapid.T) step {
		id := rapid.SampledFrom(propertyOrderIDs).Draw(t, "orderID")
		client := rapid.SampledFrom([]string{"client-1", "client-2"}).Draw(t, "clientID")
		advance := time.Duration(rapid.IntRange(0, 3).Draw(t, "advance")) * time.Second

		var action orderbookv1.Action
		switch verb := rapid.IntRange(0, 19).Draw(t, "verb"); {
		case verb < 11:
			action = orderbookv1.CreateOrder{
				Symbol:       testSymbol,
				ClientID:     client,
				OrderID:      id,
				Validity:     rapid.SampledFrom([]orderbookv1.Validity{orderbookv1.ValidityDay, orderbookv1.ValidityGoodTilCanceled}).Draw(t, "validity"),
				Side:         rapid.SampledFrom([]orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell}).Draw(t, "side"),
				Quantity:     rapid.Int64Range(0, 10).Draw(t, "quantity"),
				Price:        maybePrice(t, "price"),
				TriggerPrice: maybePrice(t, "trigger"),
			}
		case verb < 15:
			cmd := orderbookv1.UpdateOrder{
				Symbol:       testSymbol,
				ClientID:     client,
				OrderID:      id,
				Price:        maybePrice(t, "price"),
				TriggerPrice: maybePrice(t, "trigger"),
			}
			if rapid.Bool().Draw(t, "quantitySet") {
				cmd.Quantity = qty(rapid.Int64Range(0, 12).Draw(t, "quantity"))
			}
			action = cmd
		case verb < 18:
			action = orderbookv1.CancelOrder{Symbol: testSymbol, ClientID: client, OrderID: id}
		default:
			// The target status is resolved against the book when applied.
			action = orderbookv1.UpdateStatus{Symbol: testSymbol}
		}
		return step{action: action, advance: advance}
	})
}

var nextStatus = map[orderbookv1.MarketStatus]orderbookv1.MarketStatus{
	orderbookv1.MarketStatusClosed:  orderbookv1.MarketStatusPreOpen,
	orderbookv1.MarketStatusPreOpen: orderbookv1.MarketStatusOpen,
	orderbookv1.MarketStatusOpen:    orderbookv1.MarketStatusClosed,
}

func apply(ob *Orderbook, clock *fakeClock, s step) []orderbookv1.Event {
	clock.advance(s.advance)
	switch a := s.action.(type) {
	case orderbookv1.CreateOrder:
		return ob.CreateOrder(a)
	case orderbookv1.UpdateOrder:
		return ob.UpdateOrder(a)
	case orderbookv1.CancelOrder:
		return ob.CancelOrder(a)
	case orderbookv1.UpdateStatus:
		a.Status = nextStatus[ob.Status()]
		return ob.UpdateStatus(a)
	default:
		panic(fmt.Sprintf("unexpected action %T", s.action))
	}
}

func eventOrders(e orderbookv1.Event) []orderbookv1.Order {
	switch ev := e.(type) {
	case orderbookv1.CreateConfirmed:
		return []orderbookv1.Order{ev.Order}
	case orderbookv1.UpdateConfirmed:
		return []orderbookv1.Order{ev.Order}
	case orderbookv1.CancelConfirmed:
		return []orderbookv1.Order{ev.Order}
	case orderbookv1.ExpireConfirmed:
		return []orderbookv1.Order{ev.Order}
	case orderbookv1.OrderTriggered:
		return []orderbookv1.Order{ev.Order}
	case orderbookv1.OrdersMatched:
		return []orderbookv1.Order{ev.Fills[0].Order, ev.Fills[1].Order}
	default:
		return nil
	}
}

func isRejection(events []orderbookv1.Event) bool {
	if len(events) != 1 {
		return false
	}
	switch events[0].(type) {
	case orderbookv1.CreateRejected, orderbookv1.UpdateRejected, orderbookv1.CancelRejected:
		return true
	default:
		return false
	}
}

func checkBook(t *rapid.T, ob *Orderbook) {
	state := ob.CreateSnapshot()

	working := map[orderbookv1.Side]int64{}
	orders := map[orderbookv1.Side]int{}
	for _, o := range state.Orders {
		if o.Filled+o.Remaining != o.Quantity || o.Remaining <= 0 {
			t.Fatalf("live order %s breaks quantity conservation: %+v", o.ID, o)
		}
		if o.Status == orderbookv1.OrderStatusWorking {
			working[o.Side] += o.Remaining
			orders[o.Side]++
		}
	}

	for _, side := range []orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell} {
		levels := ob.Levels(side, 0)
		count := 0
		for _, l := range levels {
			count += l.Orders
		}
		if got := levelQuantity(levels); got != working[side] || count != orders[side] {
			t.Fatalf("%s levels report %d in %d orders, book holds %d in %d", side, got, count, working[side], orders[side])
		}
	}

	if ob.Status() == orderbookv1.MarketStatusOpen {
		bid, hasBid := ob.bids.bestPrice()
		ask, hasAsk := ob.asks.bestPrice()
		if hasBid && hasAsk && bid.GreaterThanOrEqual(ask) {
			t.Fatalf("open book is crossed: bid %s >= ask %s", bid, ask)
		}
	}
}

func TestProperty_BookInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob, clock := newTestBook(t, testSecurity(rapid.Int64Range(0, 3).Draw(t, "protectionTicks")), orderbookv1.MarketStatusOpen)
		steps := rapid.SliceOfN(stepGen(), 1, 60).Draw(t, "steps")

		for i, s := range steps {
			before := ob.CreateSnapshot()
			events := apply(ob, clock, s)

			if len(events) == 0 {
				t.Fatalf("step %d (%T) returned no events", i, s.action)
			}
			for _, e := range events {
				if e.Instrument() != testSymbol {
					t.Fatalf("step %d: event %s for instrument %q", i, e.Type(), e.Instrument())
				}
				for _, o := range eventOrders(e) {
					if o.Filled+o.Remaining != o.Quantity || o.Remaining < 0 {
						t.Fatalf("step %d: %s carries order %s with filled %d remaining %d quantity %d",
							i, e.Type(), o.ID, o.Filled, o.Remaining, o.Quantity)
					}
				}
			}
			if isRejection(events) {
				if after := ob.CreateSnapshot(); !reflect.DeepEqual(before, after) {
					t.Fatalf("step %d: rejection %+v mutated the book", i, events[0])
				}
			}
			checkBook(t, ob)
		}
	})
}

func TestProperty_MatchingDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		security := testSecurity(rapid.Int64Range(0, 3).Draw(t, "protectionTicks"))
		steps := rapid.SliceOfN(stepGen(), 1, 60).Draw(t, "steps")

		first, firstClock := newTestBook(t, security, orderbookv1.MarketStatusOpen)
		second, secondClock := newTestBook(t, security, orderbookv1.MarketStatusOpen)

		for i, s := range steps {
			a := apply(first, firstClock, s)
			b := apply(second, secondClock, s)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("step %d diverged:\n%+v\n%+v", i, a, b)
			}
		}
	})
}

func TestProperty_PriceTimePriority(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ob, clock := newTestBook(t, testSecurity(0), orderbookv1.MarketStatusOpen)

		price := rapid.Int64Range(8, 12).Draw(t, "ticks") * 10
		first := rapid.Int64Range(1, 10).Draw(t, "first")
		second := rapid.Int64Range(1, 10).Draw(t, "second")
		aggressor := rapid.Int64Range(1, first+second-1).Draw(t, "aggressor")

		ob.CreateOrder(limitOrder("s1", orderbookv1.SideSell, first, price))
		ob.CreateOrder(limitOrder("s2", orderbookv1.SideSell, second, price))

		if rapid.Bool().Draw(t, "shrinkFirst") && first > 1 {
			first--
			cmd := amend("s1")
			cmd.Quantity = qty(first)
			ob.UpdateOrder(cmd)
		}
		if aggressor >= first+second {
			aggressor = first + second - 1
		}

		clock.advance(time.Second)
		events := ob.CreateOrder(limitOrder("b1", orderbookv1.SideBuy, aggressor, price))
		match, ok := events[1].(orderbookv1.OrdersMatched)
		if !ok {
			t.Fatalf("expected a match, got %T", events[1])
		}
		if got := match.Fills[1].Order.ID; got != "s1" {
			t.Fatalf("first fill went to %s, want s1", got)
		}
		if match.Fills[1].Role != orderbookv1.FillRoleResting {
			t.Fatalf("resting order filled as %s", match.Fills[1].Role)
		}
	})
}
