// Конфигурация из переменных окружения (префикс DAILY_)
package daily

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	// хранилище
	Store        string        `envconfig:"STORE" default:"mongo"`
	MongoURI     string        `envconfig:"MONGO_URI"`
	MongoDB      string        `envconfig:"MONGO_DB" default:"discord_bot"`
	MongoPool    uint64        `envconfig:"MONGO_POOL" default:"10"`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// начисление
	Cooldown  time.Duration `envconfig:"COOLDOWN" default:"24h"`
	DailyRate int64         `envconfig:"DAILY_RATE" default:"2"`

	// ограничение запросов
	ClaimMinInterval time.Duration `envconfig:"CLAIM_MIN_INTERVAL" default:"2s"`
	ClaimLimit       int           `envconfig:"CLAIM_LIMIT" default:"3"`
	StatusLimit      int           `envconfig:"STATUS_LIMIT" default:"30"`
	LimitWindow      time.Duration `envconfig:"LIMIT_WINDOW" default:"1m"`
	LimitCapacity    int           `envconfig:"LIMIT_CAPACITY" default:"10000"`

	// статус
	StatusCacheTTL  time.Duration `envconfig:"STATUS_CACHE_TTL" default:"30s"`
	HeartbeatWindow time.Duration `envconfig:"HEARTBEAT_WINDOW" default:"5m"`
	LeaderboardSize int           `envconfig:"LEADERBOARD_SIZE" default:"10"`

	// redis (необязательно)
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUser     string `envconfig:"REDIS_USER"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// kafka (необязательно)
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"daily_claims"`
	KafkaGroup   string   `envconfig:"KAFKA_GROUP" default:"daily_ledger"`

	// rabbitmq (необязательно)
	RabbitURL   string `envconfig:"RABBIT_URL"`
	RabbitQueue string `envconfig:"RABBIT_QUEUE" default:"daily_claims"`

	// postgres, только для ledger
	LedgerDSN string `envconfig:"LEDGER_DSN"`

	OtelEndpoint string `envconfig:"OTEL_ENDPOINT"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DAILY", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Конфигурация job ledger: нужны только kafka и postgres
func LoadLedger() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DAILY", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("env DAILY_KAFKA_BROKERS is not set")
	}
	if cfg.LedgerDSN == "" {
		return nil, fmt.Errorf("env DAILY_LEDGER_DSN is not set")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("env DAILY_MONGO_URI is not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Cooldown <= 0 {
		return fmt.Errorf("DAILY_COOLDOWN must be > 0")
	}
	if c.DailyRate <= 0 {
		return fmt.Errorf("DAILY_DAILY_RATE must be > 0")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("DAILY_STORE_TIMEOUT must be > 0")
	}
	if c.ClaimLimit <= 0 || c.StatusLimit <= 0 || c.LimitWindow <= 0 || c.LimitCapacity <= 0 {
		return fmt.Errorf("incorrect rate limit settings")
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("DAILY_LEADERBOARD_SIZE must be > 0")
	}
	return nil
}

func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// URI может быть без схемы: host:port
func (c *Config) MongoURL() string {
	if strings.HasPrefix(c.MongoURI, "mongodb://") || strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
		return c.MongoURI
	}
	return "mongodb://" + c.MongoURI
}
