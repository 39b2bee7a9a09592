package orderreaderv1

import (
	"context"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
)

// OrderReader defines the interface for reading book commands from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// ReadMessage blocks for the next message and decodes its command. A
	// decode failure still returns the message so the caller can skip its offset.
	ReadMessage(ctx context.Context) (kafka.Message, orderbookv1.Action, error)
	// SetOffset positions the reader at offset.
	SetOffset(offset int64) error
	// Close closes the reader
	Close() error
}
