package marketdata

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/exchange/pkg/errors"
	loggermock "github.com/muhammadchandra19/exchange/pkg/logger/mock"
	redismock "github.com/muhammadchandra19/exchange/pkg/redis/mock"
	marketdatav1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/market-data/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey     = "exchange:depth:BBCA"
	testChannel = "exchange:depth"
)

func testDepth() marketdatav1.Depth {
	return marketdatav1.Depth{
		Symbol: "BBCA",
		Status: orderbookv1.MarketStatusOpen,
		Bids:   []orderbookv1.Level{{Price: decimal.NewFromInt(100), Quantity: 8, Orders: 2}},
		Asks:   []orderbookv1.Level{{Price: decimal.NewFromInt(110), Quantity: 3, Orders: 1}},
		Time:   time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_PublishDepth(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(r *redismock.MockClient, log *loggermock.MockInterface)
		errCode errors.ErrorCode
	}{
		{
			name: "sets latest then publishes",
			setup: func(r *redismock.MockClient, log *loggermock.MockInterface) {
				gomock.InOrder(
					r.EXPECT().Set(gomock.Any(), testKey, gomock.Any(), time.Duration(0)).
						DoAndReturn(func(ctx context.Context, key string, value any, exp time.Duration) error {
							var depth map[string]any
							require.NoError(t, json.Unmarshal(value.([]byte), &depth))
							assert.Equal(t, "BBCA", depth["symbol"])
							assert.Len(t, depth["bids"], 1)
							return nil
						}),
					r.EXPECT().Publish(gomock.Any(), testChannel, gomock.Any()).Return(int64(0), nil),
				)
				log.EXPECT().DebugContext(gomock.Any(), "Published depth", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name: "set failure skips publish",
			setup: func(r *redismock.MockClient, log *loggermock.MockInterface) {
				r.EXPECT().Set(gomock.Any(), testKey, gomock.Any(), time.Duration(0)).Return(stderrors.New("READONLY"))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			errCode: errors.MarketDataPublishError,
		},
		{
			name: "publish failure",
			setup: func(r *redismock.MockClient, log *loggermock.MockInterface) {
				r.EXPECT().Set(gomock.Any(), testKey, gomock.Any(), time.Duration(0)).Return(nil)
				r.EXPECT().Publish(gomock.Any(), testChannel, gomock.Any()).
					Return(int64(0), errors.NewErrorDetails("Failed to publish message to Redis", errors.RedisPublishError, testChannel))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any())
			},
			errCode: errors.RedisPublishError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := redismock.NewMockClient(ctrl)
			log := loggermock.NewMockInterface(ctrl)
			tc.setup(r, log)

			err := NewDepthPublisher(r, testKey, testChannel, log).PublishDepth(context.Background(), testDepth())
			if tc.errCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, string(errors.MarketDataPublishError))
			if tc.errCode != errors.MarketDataPublishError {
				assert.True(t, errors.ErrorCodeEquals(err, tc.errCode))
			}
		})
	}
}
