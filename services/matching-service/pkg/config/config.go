package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	env.Must(cfg, Load(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return env.Parse(cfg)
}

// Config holds the configuration for the application
type Config struct {
	Security   orderbookv1.Security `envPrefix:"SECURITY_"`
	OrderKafka KafkaConfig          `envPrefix:"ORDER_KAFKA_"` // command intake
	EventKafka KafkaConfig          `envPrefix:"EVENT_KAFKA_"` // event outbound
	Redis      redis.Config         `envPrefix:"REDIS_"`
	MarketData MarketDataConfig     `envPrefix:"MARKET_DATA_"`
	Schedule   ScheduleConfig       `envPrefix:"SCHEDULE_"`
	Snapshot   SnapshotConfig       `envPrefix:"SNAPSHOT_"`
	App        AppConfig            `envPrefix:"APP_"`
}

// KafkaConfig holds the configuration for one Kafka topic.
type KafkaConfig struct {
	Brokers   []string `env:"BROKERS,required"`
	Topic     string   `env:"TOPIC,required"`
	Partition int      `env:"PARTITION" envDefault:"0"`
}

// MarketDataConfig holds the depth broadcast settings.
type MarketDataConfig struct {
	Depth   int    `env:"DEPTH" envDefault:"10"`
	Channel string `env:"CHANNEL" envDefault:"depth"`
}

// ScheduleConfig holds cron specs for the session transitions. An empty spec
// disables that transition.
type ScheduleConfig struct {
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
	PreOpen  string `env:"PRE_OPEN"`
	Open     string `env:"OPEN"`
	Close    string `env:"CLOSE"`
}

// Location resolves Timezone.
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// SnapshotConfig holds how often engine state is persisted.
type SnapshotConfig struct {
	Interval    time.Duration `env:"INTERVAL" envDefault:"30s"`
	OffsetDelta int64         `env:"OFFSET_DELTA" envDefault:"1000"`
}

// AppConfig holds process level settings.
type AppConfig struct {
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	HealthPort    int           `env:"HEALTH_PORT" envDefault:"8080"`
	GRPCPort      int           `env:"GRPC_PORT" envDefault:"9090"`
	CommandBuffer int           `env:"COMMAND_BUFFER" envDefault:"1024"`
	StopTimeout   time.Duration `env:"STOP_TIMEOUT" envDefault:"30s"`
}
