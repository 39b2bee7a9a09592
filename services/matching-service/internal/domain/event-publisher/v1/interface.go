package eventpublisherv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// EventPublisher publishes the events one command produced.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventpublisherv1_mock
type EventPublisher interface {
	// Publish writes events as a single batch, preserving their order.
	Publish(ctx context.Context, events []orderbookv1.Event) error
	Close() error
}
