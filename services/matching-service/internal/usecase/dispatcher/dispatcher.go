package dispatcher

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	eventpublisherv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/event-publisher/v1"
	marketdatav1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/market-data/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// Dispatcher routes one action at a time to the book and republishes the
// resulting event batch. It is not safe for concurrent Dispatch calls.
type Dispatcher struct {
	book      orderbookv1.Orderbook
	publisher eventpublisherv1.EventPublisher
	depth     marketdatav1.DepthPublisher
	maxPrices int
	logger    logger.Interface

	trades atomic.Int64
}

// NewDispatcher creates a Dispatcher. depth may be nil to disable the depth
// broadcast; maxPrices bounds each side of it.
func NewDispatcher(
	book orderbookv1.Orderbook,
	publisher eventpublisherv1.EventPublisher,
	depth marketdatav1.DepthPublisher,
	maxPrices int,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		book:      book,
		publisher: publisher,
		depth:     depth,
		maxPrices: maxPrices,
		logger:    logger,
	}
}

// Dispatch applies action and publishes its events. Events are returned even
// when publishing fails, since the book has already changed.
func (d *Dispatcher) Dispatch(ctx context.Context, action orderbookv1.Action) ([]orderbookv1.Event, error) {
	if symbol := d.book.Security().Symbol; action.Instrument() != symbol {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("command for %q routed to book %q", action.Instrument(), symbol),
			errors.InstrumentMismatchError,
			"symbol",
		)
	}

	events, err := d.apply(action)
	if err != nil {
		return nil, err
	}

	d.logEvents(ctx, action, events)

	if err := d.publisher.Publish(ctx, events); err != nil {
		return events, err
	}

	if d.depth != nil && changesBook(events) {
		depth := marketdatav1.DepthOf(d.book, d.maxPrices, events[len(events)-1].OccurredAt())
		if err := d.depth.PublishDepth(ctx, depth); err != nil {
			return events, err
		}
	}

	return events, nil
}

// Trades returns how many trades have been dispatched since start.
func (d *Dispatcher) Trades() int64 {
	return d.trades.Load()
}

func (d *Dispatcher) apply(action orderbookv1.Action) ([]orderbookv1.Event, error) {
	switch a := action.(type) {
	case orderbookv1.CreateOrder:
		return d.book.CreateOrder(a), nil
	case orderbookv1.UpdateOrder:
		return d.book.UpdateOrder(a), nil
	case orderbookv1.CancelOrder:
		return d.book.CancelOrder(a), nil
	case orderbookv1.UpdateStatus:
		if from := d.book.Status(); !from.CanTransitionTo(a.Status) {
			return nil, errors.NewErrorDetails(
				(&orderbookv1.TransitionError{From: from, To: a.Status}).Error(),
				errors.StatusTransitionError,
				"status",
			)
		}
		return d.book.UpdateStatus(a), nil
	default:
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown action %T", action), errors.UnknownActionError, "type")
	}
}

func (d *Dispatcher) logEvents(ctx context.Context, action orderbookv1.Action, events []orderbookv1.Event) {
	d.logger.DebugContext(ctx, "Dispatched action",
		logger.NewField("type", action.Type()),
		logger.NewField("events", len(events)),
	)

	for _, event := range events {
		switch e := event.(type) {
		case orderbookv1.CreateRejected:
			d.logRejection(ctx, e.Type(), e.OrderID, e.Reason)
		case orderbookv1.UpdateRejected:
			d.logRejection(ctx, e.Type(), e.OrderID, e.Reason)
		case orderbookv1.CancelRejected:
			d.logRejection(ctx, e.Type(), e.OrderID, e.Reason)
		case orderbookv1.OrdersMatched:
			total := d.trades.Add(1)
			d.logger.InfoContext(ctx, "Trade executed",
				logger.NewField("price", e.Price.String()),
				logger.NewField("quantity", e.Quantity),
				logger.NewField("buyOrderID", e.Fills[0].Order.ID),
				logger.NewField("sellOrderID", e.Fills[1].Order.ID),
				logger.NewField("totalTrades", total),
			)
		case orderbookv1.OrderTriggered:
			d.logger.InfoContext(ctx, "Stop order triggered",
				logger.NewField("orderID", e.Order.ID),
				logger.NewField("price", e.Order.Price.Decimal.String()),
			)
		case orderbookv1.StatusChanged:
			d.logger.InfoContext(ctx, "Market status changed", logger.NewField("status", e.Status))
		}
	}
}

func (d *Dispatcher) logRejection(ctx context.Context, eventType orderbookv1.EventType, orderID string, reason orderbookv1.RejectReason) {
	d.logger.InfoContext(ctx, "Command rejected",
		logger.NewField("event", eventType),
		logger.NewField("orderID", orderID),
		logger.NewField("reason", reason),
	)
}

// changesBook reports whether any event may have moved visible depth.
func changesBook(events []orderbookv1.Event) bool {
	for _, event := range events {
		switch event.(type) {
		case orderbookv1.CreateRejected, orderbookv1.UpdateRejected, orderbookv1.CancelRejected:
		default:
			return true
		}
	}
	return false
}
