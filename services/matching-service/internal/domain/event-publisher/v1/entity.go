package eventpublisherv1

import (
	"encoding/json"
	"fmt"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// EventEnvelope is the wire shape of one event. BatchID groups the events of a
// single command; Index is the position inside that batch.
type EventEnvelope struct {
	BatchID string                `json:"batchID"`
	Index   int                   `json:"index"`
	Size    int                   `json:"size"`
	Type    orderbookv1.EventType `json:"type"`
	Event   json.RawMessage       `json:"event"`
}

// NewEventEnvelopes wraps a batch of events for the wire.
func NewEventEnvelopes(batchID string, events []orderbookv1.Event) ([]EventEnvelope, error) {
	envelopes := make([]EventEnvelope, 0, len(events))
	for i, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			return nil, errors.NewTracer(string(errors.EventEncodeError)).Wrap(err)
		}
		envelopes = append(envelopes, EventEnvelope{
			BatchID: batchID,
			Index:   i,
			Size:    len(events),
			Type:    event.Type(),
			Event:   body,
		})
	}
	return envelopes, nil
}

// Decode returns the concrete event carried by the envelope.
func (e EventEnvelope) Decode() (orderbookv1.Event, error) {
	switch e.Type {
	case orderbookv1.EventTypeCreateConfirmed:
		return decodeAs[orderbookv1.CreateConfirmed](e.Event)
	case orderbookv1.EventTypeCreateRejected:
		return decodeAs[orderbookv1.CreateRejected](e.Event)
	case orderbookv1.EventTypeUpdateConfirmed:
		return decodeAs[orderbookv1.UpdateConfirmed](e.Event)
	case orderbookv1.EventTypeUpdateRejected:
		return decodeAs[orderbookv1.UpdateRejected](e.Event)
	case orderbookv1.EventTypeCancelConfirmed:
		return decodeAs[orderbookv1.CancelConfirmed](e.Event)
	case orderbookv1.EventTypeCancelRejected:
		return decodeAs[orderbookv1.CancelRejected](e.Event)
	case orderbookv1.EventTypeExpireConfirmed:
		return decodeAs[orderbookv1.ExpireConfirmed](e.Event)
	case orderbookv1.EventTypeOrderTriggered:
		return decodeAs[orderbookv1.OrderTriggered](e.Event)
	case orderbookv1.EventTypeOrdersMatched:
		return decodeAs[orderbookv1.OrdersMatched](e.Event)
	case orderbookv1.EventTypeStatusChanged:
		return decodeAs[orderbookv1.StatusChanged](e.Event)
	default:
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown event type %q", e.Type), errors.EventEncodeError, "type")
	}
}

func decodeAs[T orderbookv1.Event](body json.RawMessage) (orderbookv1.Event, error) {
	var event T
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, errors.NewTracer(string(errors.EventEncodeError)).Wrap(err)
	}
	return event, nil
}
