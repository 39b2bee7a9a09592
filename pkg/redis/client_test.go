package redis

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClient_ConnectRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "no addresses", mutate: func(c *Config) { c.Addrs = nil }, field: "addrs"},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "sentinel" }, field: "mode"},
		{name: "zero connect timeout", mutate: func(c *Config) { c.ConnectTimeout = 0 }, field: "connect_timeout"},
		{name: "zero pool size", mutate: func(c *Config) { c.PoolSize = 0 }, field: "pool_size"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, field: "max_retries"},
		{name: "negative backoff", mutate: func(c *Config) { c.MaxRetryBackoff = -time.Second }, field: "max_retry_backoff"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := NewClient(nil, cfg).Connect(context.Background())

			var details *errors.ErrorDetails
			if assert.ErrorAs(t, err, &details) {
				assert.Equal(t, errors.RedisConfigError, details.Code)
				assert.Equal(t, tc.field, details.Field)
			}
		})
	}
}

func TestClient_NilConfig(t *testing.T) {
	err := NewClient(nil, nil).Connect(context.Background())
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError))
}

func TestClient_PingBeforeConnect(t *testing.T) {
	err := NewClient(nil, DefaultConfig()).Ping(context.Background())
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisPingError))
}

func TestConfig_Key(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "exchange:snapshot:BBCA", cfg.Key("snapshot:BBCA"))
}
