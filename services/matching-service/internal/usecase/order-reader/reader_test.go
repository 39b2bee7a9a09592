package orderreader

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/exchange/pkg/errors"
	loggermock "github.com/muhammadchandra19/exchange/pkg/logger/mock"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKafkaReader struct {
	messages  []kafka.Message
	readErr   error
	offset    int64
	offsetErr error
	closed    bool
}

func (f *fakeKafkaReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.readErr != nil {
		return kafka.Message{}, f.readErr
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeKafkaReader) SetOffset(offset int64) error {
	f.offset = offset
	return f.offsetErr
}

func (f *fakeKafkaReader) Close() error {
	f.closed = true
	return nil
}

func TestReader_ReadMessage(t *testing.T) {
	testCases := []struct {
		name      string
		kafka     *fakeKafkaReader
		setupLog  func(log *loggermock.MockInterface)
		assertion func(t *testing.T, msg kafka.Message, action orderbookv1.Action, err error)
	}{
		{
			name: "decodes command",
			kafka: &fakeKafkaReader{messages: []kafka.Message{{
				Offset: 41,
				Value:  []byte(`{"type":"cancel_order","cancel_order":{"symbol":"BBCA","clientID":"c1","orderID":"o1"}}`),
			}}},
			setupLog: func(log *loggermock.MockInterface) {
				log.EXPECT().DebugContext(gomock.Any(), "ReadMessage", gomock.Any(), gomock.Any())
			},
			assertion: func(t *testing.T, msg kafka.Message, action orderbookv1.Action, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(41), msg.Offset)
				assert.Equal(t, orderbookv1.CancelOrder{Symbol: "BBCA", ClientID: "c1", OrderID: "o1"}, action)
			},
		},
		{
			name: "undecodable command keeps the message",
			kafka: &fakeKafkaReader{messages: []kafka.Message{{
				Offset: 42,
				Value:  []byte(`{"type":"bogus"}`),
			}}},
			setupLog: func(log *loggermock.MockInterface) {
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertion: func(t *testing.T, msg kafka.Message, action orderbookv1.Action, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, errors.UnknownActionError))
				assert.Equal(t, int64(42), msg.Offset)
				assert.Nil(t, action)
			},
		},
		{
			name:  "broker failure",
			kafka: &fakeKafkaReader{readErr: stderrors.New("broker not available")},
			setupLog: func(log *loggermock.MockInterface) {
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			assertion: func(t *testing.T, msg kafka.Message, action orderbookv1.Action, err error) {
				assert.ErrorContains(t, err, "broker not available")
				assert.Nil(t, action)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := loggermock.NewMockInterface(ctrl)
			tc.setupLog(log)

			msg, action, err := newReader(tc.kafka, log).ReadMessage(context.Background())
			tc.assertion(t, msg, action, err)
		})
	}
}

func TestReader_ReadMessageCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newReader(&fakeKafkaReader{readErr: context.Canceled}, loggermock.NewMockInterface(ctrl)).ReadMessage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_SetOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := loggermock.NewMockInterface(ctrl)

	fake := &fakeKafkaReader{}
	require.NoError(t, newReader(fake, log).SetOffset(100))
	assert.Equal(t, int64(100), fake.offset)

	fake.offsetErr = stderrors.New("reader is part of a group")
	log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
	err := newReader(fake, log).SetOffset(7)
	assert.True(t, errors.ErrorCodeEquals(err, errors.KafkaOffsetError))
}
