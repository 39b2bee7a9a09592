package marketdata

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	marketdatav1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/market-data/v1"
)

// Publisher keeps the latest depth under a Redis key and announces every
// change on a channel.
type Publisher struct {
	key         string
	channel     string
	logger      logger.Interface
	redisclient redis.Client
}

var _ marketdatav1.DepthPublisher = (*Publisher)(nil)

// NewDepthPublisher creates a Publisher writing to key and channel.
func NewDepthPublisher(redisclient redis.Client, key, channel string, logger logger.Interface) *Publisher {
	return &Publisher{
		key:         key,
		channel:     channel,
		logger:      logger,
		redisclient: redisclient,
	}
}

// PublishDepth stores depth as the latest view and publishes it.
func (p *Publisher) PublishDepth(ctx context.Context, depth marketdatav1.Depth) error {
	buf, err := json.Marshal(depth)
	if err != nil {
		return errors.NewTracer(string(errors.MarketDataPublishError)).Wrap(err)
	}

	if err := p.redisclient.Set(ctx, p.key, buf, 0); err != nil {
		err = errors.NewTracer(string(errors.MarketDataPublishError)).Wrap(err)
		p.logger.ErrorContext(ctx, err, logger.NewField("key", p.key))
		return err
	}

	receivers, err := p.redisclient.Publish(ctx, p.channel, buf)
	if err != nil {
		err = errors.NewTracer(string(errors.MarketDataPublishError)).Wrap(err)
		p.logger.ErrorContext(ctx, err, logger.NewField("channel", p.channel))
		return err
	}

	p.logger.DebugContext(ctx, "Published depth",
		logger.NewField("channel", p.channel),
		logger.NewField("receivers", receivers),
		logger.NewField("bids", len(depth.Bids)),
		logger.NewField("asks", len(depth.Asks)),
	)
	return nil
}
