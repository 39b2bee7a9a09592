package eventpublisher

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	eventpublisherv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/event-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange/services/matching-service/pkg/config"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the Publisher drives.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes event batches to the event topic, one message per event,
// keyed by symbol so a batch stays on one partition in order.
type Publisher struct {
	kafkaWriter messageWriter
	logger      logger.Interface
	newBatchID  func() string
}

var _ eventpublisherv1.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for the event topic.
func NewPublisher(config config.KafkaConfig, logger logger.Interface) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return newPublisher(kafkaWriter, logger, func() string { return ulid.Make().String() })
}

func newPublisher(kafkaWriter messageWriter, logger logger.Interface, newBatchID func() string) *Publisher {
	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      logger,
		newBatchID:  newBatchID,
	}
}

// Publish writes events as a single batch.
func (p *Publisher) Publish(ctx context.Context, events []orderbookv1.Event) error {
	if len(events) == 0 {
		return nil
	}

	batchID := p.newBatchID()
	envelopes, err := eventpublisherv1.NewEventEnvelopes(batchID, events)
	if err != nil {
		p.logger.ErrorContext(ctx, err, logger.NewField("batchID", batchID))
		return err
	}

	msgs := make([]kafka.Message, 0, len(envelopes))
	for i, envelope := range envelopes {
		value, err := json.Marshal(envelope)
		if err != nil {
			return errors.NewTracer(string(errors.EventEncodeError)).Wrap(err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(events[i].Instrument()),
			Value: value,
			Time:  events[i].OccurredAt(),
		})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		err = errors.NewTracer(string(errors.KafkaWriteError)).Wrap(err)
		p.logger.ErrorContext(ctx, err,
			logger.NewField("batchID", batchID),
			logger.NewField("events", len(events)),
		)
		return err
	}

	p.logger.DebugContext(ctx, "Published event batch",
		logger.NewField("batchID", batchID),
		logger.NewField("events", len(events)),
	)
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
