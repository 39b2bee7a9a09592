package eventpublisherv1

import (
	"encoding/json"
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventEnvelopes(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	header := orderbookv1.EventHeader{Symbol: "BBCA", Time: at}
	events := []orderbookv1.Event{
		orderbookv1.CreateRejected{EventHeader: header, ClientID: "c1", OrderID: "o1", Reason: orderbookv1.RejectReasonInvalidPriceIncrement},
		orderbookv1.OrdersMatched{
			EventHeader: header,
			Price:       decimal.NewFromInt(100),
			Quantity:    3,
			Fills: []orderbookv1.Fill{
				{Role: orderbookv1.FillRoleResting, Order: orderbookv1.Order{ID: "b1", Side: orderbookv1.SideBuy, Status: orderbookv1.OrderStatusFilled}},
				{Role: orderbookv1.FillRoleAggressor, Order: orderbookv1.Order{ID: "s1", Side: orderbookv1.SideSell, Status: orderbookv1.OrderStatusWorking}},
			},
		},
	}

	envelopes, err := NewEventEnvelopes("01JXBATCH", events)
	require.NoError(t, err)
	require.Len(t, envelopes, 2)

	for i, envelope := range envelopes {
		assert.Equal(t, "01JXBATCH", envelope.BatchID)
		assert.Equal(t, i, envelope.Index)
		assert.Equal(t, 2, envelope.Size)
		assert.Equal(t, events[i].Type(), envelope.Type)
	}

	var matched map[string]any
	require.NoError(t, json.Unmarshal(envelopes[1].Event, &matched))
	assert.Equal(t, "100", matched["price"])
	assert.Equal(t, "BBCA", matched["symbol"])

	decoded, err := envelopes[0].Decode()
	require.NoError(t, err)
	assert.Equal(t, events[0], decoded)

	decoded, err = envelopes[1].Decode()
	require.NoError(t, err)
	fills := decoded.(orderbookv1.OrdersMatched).Fills
	require.Len(t, fills, 2)
	assert.Equal(t, "b1", fills[0].Order.ID)
	assert.Equal(t, orderbookv1.FillRoleAggressor, fills[1].Role)
}

func TestEventEnvelope_DecodeUnknownType(t *testing.T) {
	_, err := EventEnvelope{Type: "trade_busted", Event: json.RawMessage(`{}`)}.Decode()
	assert.Error(t, err)
}
