package orderbook

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// UpdateStatus moves the market through PreOpen -> Open -> Closed. Opening
// uncrosses the book accumulated during PreOpen; closing expires Day orders.
// Requesting a transition out of cycle panics with *orderbookv1.TransitionError.
func (ob *Orderbook) UpdateStatus(cmd orderbookv1.UpdateStatus) []orderbookv1.Event {
	if !ob.status.CanTransitionTo(cmd.Status) {
		panic(&orderbookv1.TransitionError{From: ob.status, To: cmd.Status})
	}

	now := ob.clock.Now()
	ob.status = cmd.Status
	events := []orderbookv1.Event{orderbookv1.StatusChanged{EventHeader: ob.header(now), Status: cmd.Status}}

	switch cmd.Status {
	case orderbookv1.MarketStatusOpen:
		events = append(events, ob.open(now)...)
	case orderbookv1.MarketStatusClosed:
		events = append(events, ob.expire(now)...)
	}
	return events
}

func (ob *Orderbook) open(now time.Time) []orderbookv1.Event {
	// the archive only answers for orders completed in the current session
	clear(ob.completed)

	if base := sessionSequence(now); base > ob.sequence {
		ob.sequence = base
	}

	events := ob.cross(now)
	if ob.lastTrade.Valid {
		if fired := ob.triggerStops(ob.lastTrade.Decimal, now); len(fired) > 0 {
			events = append(events, fired...)
			events = append(events, ob.cross(now)...)
		}
	}
	return events
}

// sessionSequence encodes the session date in the high bits so arrival
// sequences stay comparable across reopens.
func sessionSequence(now time.Time) int64 {
	y, m, d := now.Date()
	return int64(y*10000+int(m)*100+d) << 32
}

// expire removes every live Day order: bids, then asks, best first, then
// pending stops.
func (ob *Orderbook) expire(now time.Time) []orderbookv1.Event {
	candidates := ob.bids.handles()
	candidates = append(candidates, ob.asks.handles()...)
	candidates = append(candidates, ob.pending...)

	var events []orderbookv1.Event
	for _, h := range candidates {
		order := ob.arena[h]
		if order.Validity != orderbookv1.ValidityDay {
			continue
		}
		ob.detach(h)
		order.Expire(now)
		events = append(events, orderbookv1.ExpireConfirmed{EventHeader: ob.header(now), Order: ob.archive(h)})
	}
	return events
}
