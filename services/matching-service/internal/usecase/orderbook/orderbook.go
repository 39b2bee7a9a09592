package orderbook

import (
	"fmt"
	"maps"
	"slices"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Orderbook is the matching engine of one instrument. It owns every live order
// in an arena keyed by handle; the price levels, the id index and the pending
// stop list only reference handles.
//
// Orderbook is single-threaded: callers serialize commands.
type Orderbook struct {
	security orderbookv1.Security
	clock    orderbookv1.Clock

	status    orderbookv1.MarketStatus
	sequence  int64
	lastTrade decimal.NullDecimal

	arena      map[handle]*orderbookv1.Order
	nextHandle handle
	index      map[string]handle // live orderID -> handle
	bids       *limits
	asks       *limits
	pending    []handle // hidden stop orders in pending arrival order
	completed  map[string]orderbookv1.Order
}

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// NewOrderbook creates a closed, empty book for security.
func NewOrderbook(security orderbookv1.Security, clock orderbookv1.Clock) *Orderbook {
	return &Orderbook{
		security:  security,
		clock:     clock,
		status:    orderbookv1.MarketStatusClosed,
		arena:     make(map[handle]*orderbookv1.Order),
		index:     make(map[string]handle),
		bids:      newBidLimits(),
		asks:      newAskLimits(),
		completed: make(map[string]orderbookv1.Order),
	}
}

// Security returns the instrument descriptor.
func (ob *Orderbook) Security() orderbookv1.Security {
	return ob.security
}

// Status returns the current market status.
func (ob *Orderbook) Status() orderbookv1.MarketStatus {
	return ob.status
}

// LastTradedPrice returns the price of the most recent trade, if any.
func (ob *Orderbook) LastTradedPrice() decimal.NullDecimal {
	return ob.lastTrade
}

// Order returns a copy of a live order, or of the last completed order with
// that id.
func (ob *Orderbook) Order(orderID string) (orderbookv1.Order, bool) {
	if h, ok := ob.index[orderID]; ok {
		return ob.arena[h].Snapshot(), true
	}
	order, ok := ob.completed[orderID]
	return order, ok
}

// Levels returns aggregated depth of Working orders on side, best price
// first. maxPrices <= 0 returns every level.
func (ob *Orderbook) Levels(side orderbookv1.Side, maxPrices int) []orderbookv1.Level {
	ls := ob.side(side)
	n := len(ls.levels)
	if maxPrices > 0 && maxPrices < n {
		n = maxPrices
	}

	levels := make([]orderbookv1.Level, 0, n)
	for _, l := range ls.levels[:n] {
		level := orderbookv1.Level{Price: l.price, Orders: len(l.entries)}
		for _, e := range l.entries {
			level.Quantity += ob.arena[e.handle].Remaining
		}
		levels = append(levels, level)
	}
	return levels
}

func (ob *Orderbook) side(side orderbookv1.Side) *limits {
	if side == orderbookv1.SideBuy {
		return ob.bids
	}
	return ob.asks
}

func (ob *Orderbook) nextSequence() int64 {
	ob.sequence++
	return ob.sequence
}

// lookup finds the live order of clientID. A reason is returned when the
// order is unknown or already terminal.
func (ob *Orderbook) lookup(clientID, orderID string) (handle, orderbookv1.RejectReason, bool) {
	if h, ok := ob.index[orderID]; ok && ob.arena[h].ClientID == clientID {
		return h, "", true
	}
	if order, ok := ob.completed[orderID]; ok && order.ClientID == clientID {
		return 0, orderbookv1.RejectReasonTooLateToCancel, false
	}
	return 0, orderbookv1.RejectReasonOrderNotInBook, false
}

// admit stores a new order in the arena and index.
func (ob *Orderbook) admit(order *orderbookv1.Order) handle {
	ob.nextHandle++
	h := ob.nextHandle
	ob.arena[h] = order
	ob.index[order.ID] = h
	return h
}

// rest puts a Working order into its price level with a fresh sequence.
func (ob *Orderbook) rest(h handle) {
	order := ob.arena[h]
	order.Sequence = ob.nextSequence()
	ob.side(order.Side).add(order.Price.Decimal, entry{sequence: order.Sequence, handle: h})
}

// unrest removes a Working order from its price level.
func (ob *Orderbook) unrest(h handle) {
	order := ob.arena[h]
	ob.side(order.Side).remove(order.Price.Decimal, entry{sequence: order.Sequence, handle: h})
}

func (ob *Orderbook) park(h handle) {
	ob.pending = append(ob.pending, h)
}

func (ob *Orderbook) unpark(h handle) {
	for i, p := range ob.pending {
		if p == h {
			ob.pending = append(ob.pending[:i], ob.pending[i+1:]...)
			return
		}
	}
}

// detach removes a live order from whichever structure holds it.
func (ob *Orderbook) detach(h handle) {
	switch ob.arena[h].Status {
	case orderbookv1.OrderStatusWorking:
		ob.unrest(h)
	case orderbookv1.OrderStatusHidden:
		ob.unpark(h)
	}
}

// archive moves a terminal order out of the arena. The order must already be
// detached from the levels and the pending list.
func (ob *Orderbook) archive(h handle) orderbookv1.Order {
	order := ob.arena[h]
	snapshot := order.Snapshot()
	delete(ob.arena, h)
	delete(ob.index, order.ID)
	ob.completed[order.ID] = snapshot
	return snapshot
}

func (ob *Orderbook) header(now time.Time) orderbookv1.EventHeader {
	return orderbookv1.EventHeader{Symbol: ob.security.Symbol, Time: now}
}

// CreateSnapshot captures the live state of the book.
func (ob *Orderbook) CreateSnapshot() orderbookv1.BookState {
	state := orderbookv1.BookState{
		Status:          ob.status,
		Sequence:        ob.sequence,
		LastTradedPrice: ob.lastTrade,
	}
	for _, h := range ob.bids.handles() {
		state.Orders = append(state.Orders, ob.arena[h].Snapshot())
	}
	for _, h := range ob.asks.handles() {
		state.Orders = append(state.Orders, ob.arena[h].Snapshot())
	}
	for _, h := range ob.pending {
		state.Orders = append(state.Orders, ob.arena[h].Snapshot())
	}
	for _, id := range slices.Sorted(maps.Keys(ob.completed)) {
		state.Completed = append(state.Completed, ob.completed[id])
	}
	return state
}

// RestoreOrderbook replaces the book with state, including the archive of
// completed orders.
func (ob *Orderbook) RestoreOrderbook(state orderbookv1.BookState) error {
	if err := validateState(ob.security, state); err != nil {
		return err
	}

	ob.status = state.Status
	ob.sequence = state.Sequence
	ob.lastTrade = state.LastTradedPrice
	ob.arena = make(map[handle]*orderbookv1.Order)
	ob.nextHandle = 0
	ob.index = make(map[string]handle)
	ob.bids = newBidLimits()
	ob.asks = newAskLimits()
	ob.pending = nil
	ob.completed = make(map[string]orderbookv1.Order, len(state.Completed))
	for _, order := range state.Completed {
		ob.completed[order.ID] = order
	}

	for _, restored := range state.Orders {
		order := restored
		h := ob.admit(&order)
		if order.Status == orderbookv1.OrderStatusWorking {
			ob.side(order.Side).add(order.Price.Decimal, entry{sequence: order.Sequence, handle: h})
			continue
		}
		ob.park(h)
	}
	return nil
}

func validateState(security orderbookv1.Security, state orderbookv1.BookState) error {
	switch state.Status {
	case orderbookv1.MarketStatusPreOpen, orderbookv1.MarketStatusOpen, orderbookv1.MarketStatusClosed:
	default:
		return fmt.Errorf("unknown market status %q", state.Status)
	}

	seen := make(map[string]struct{}, len(state.Orders))
	sequences := make(map[int64]struct{}, len(state.Orders))
	for _, order := range state.Orders {
		if _, dup := seen[order.ID]; dup {
			return fmt.Errorf("duplicate order %s in snapshot", order.ID)
		}
		seen[order.ID] = struct{}{}

		if !order.Status.IsLive() {
			return fmt.Errorf("order %s has non-live status %q", order.ID, order.Status)
		}
		if !order.Side.IsValid() {
			return fmt.Errorf("order %s has unknown side %q", order.ID, order.Side)
		}
		if !order.Validity.IsValid() {
			return fmt.Errorf("order %s has unknown validity %q", order.ID, order.Validity)
		}
		if order.Remaining <= 0 || order.Remaining != order.Quantity-order.Filled {
			return fmt.Errorf("order %s has inconsistent quantities", order.ID)
		}
		if order.Status == orderbookv1.OrderStatusWorking {
			if !order.Price.Valid || !security.OnTick(order.Price.Decimal) {
				return fmt.Errorf("working order %s has no valid price", order.ID)
			}
			if order.Sequence <= 0 || order.Sequence > state.Sequence {
				return fmt.Errorf("working order %s has sequence %d outside counter %d", order.ID, order.Sequence, state.Sequence)
			}
			if _, dup := sequences[order.Sequence]; dup {
				return fmt.Errorf("duplicate sequence %d in snapshot", order.Sequence)
			}
			sequences[order.Sequence] = struct{}{}
		}
	}

	// a completed id may be live again under a new order
	archived := make(map[string]struct{}, len(state.Completed))
	for _, order := range state.Completed {
		if _, dup := archived[order.ID]; dup {
			return fmt.Errorf("duplicate completed order %s in snapshot", order.ID)
		}
		archived[order.ID] = struct{}{}

		if !order.Status.IsTerminal() {
			return fmt.Errorf("completed order %s has non-terminal status %q", order.ID, order.Status)
		}
	}
	return nil
}
