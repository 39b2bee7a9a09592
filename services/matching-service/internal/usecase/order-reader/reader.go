package orderreader

import (
	"context"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	orderreaderv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange/services/matching-service/pkg/config"
	"github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafka.Reader the Reader drives.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	SetOffset(offset int64) error
	Close() error
}

// Reader consumes command envelopes from one partition of the order topic.
// Offsets are tracked by the engine snapshot, not by a consumer group.
type Reader struct {
	kafkaReader messageReader
	logger      logger.Interface
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// NewReader creates a new Kafka reader for consuming messages from the order topic.
func NewReader(config config.KafkaConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		Partition:   config.Partition,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	return newReader(kafkaReader, log)
}

func newReader(kafkaReader messageReader, log logger.Interface) *Reader {
	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(ctx context.Context, err error, operation string) {
	r.logger.ErrorContext(ctx, err, logger.NewField("operation", operation))
}

// SetOffset sets the offset for the Kafka reader.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		err = errors.NewErrorDetails("failed to set order reader offset", errors.KafkaOffsetError, "offset").WithCause(err)
		r.logError(context.Background(), err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and decodes its command.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, orderbookv1.Action, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return kafka.Message{}, nil, ctx.Err()
		}
		err = errors.NewTracer(string(errors.KafkaReadError)).Wrap(err)
		r.logError(ctx, err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	action, err := orderreaderv1.DecodeCommand(msg.Value)
	if err != nil {
		r.logError(ctx, err, "DecodeCommand")
		return msg, nil, err
	}

	r.logger.DebugContext(ctx, "ReadMessage",
		logger.NewField("offset", msg.Offset),
		logger.NewField("type", action.Type()),
	)

	return msg, action, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(context.Background(), err, "Close")
		return err
	}
	return nil
}
