package snapshot

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	snapshotv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/snapshot/v1"
)

// Store keeps the latest engine snapshot of one instrument under a single Redis key.
type Store struct {
	key         string
	logger      logger.Interface
	redisclient redis.Client
}

var _ snapshotv1.Store = (*Store)(nil)

// NewSnapshotStore creates a new Store writing to key.
func NewSnapshotStore(redisclient redis.Client, key string, logger logger.Interface) *Store {
	return &Store{
		key:         key,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store stores the snapshot in Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		err = errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
		s.logger.ErrorContext(ctx, err, logger.NewField("key", s.key))
		return err
	}

	if err := s.redisclient.Set(ctx, s.key, buf, 0); err != nil {
		err = errors.NewTracer("snapshot_store_error").Wrap(err)
		s.logger.ErrorContext(ctx, err, logger.NewField("key", s.key), logger.NewField("offset", snapshot.OrderOffset))
		return err
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.NewField("key", s.key),
		logger.NewField("offset", snapshot.OrderOffset),
		logger.NewField("orders", len(snapshot.Book.Orders)),
	)
	return nil
}

// LoadStore loads the snapshot from Redis.
func (s *Store) LoadStore(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key)
	if err != nil {
		err = errors.NewTracer("snapshot_load_error").Wrap(err)
		s.logger.ErrorContext(ctx, err, logger.NewField("key", s.key))
		return nil, err
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.NewField("key", s.key))
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		err = errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
		s.logger.ErrorContext(ctx, err, logger.NewField("key", s.key))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Snapshot loaded",
		logger.NewField("key", s.key),
		logger.NewField("offset", snapshot.OrderOffset),
	)
	return &snapshot, nil
}
