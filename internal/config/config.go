package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Client    Client    `yaml:"client"`
	Storage   Storage   `yaml:"storage"`
	Kafka     Kafka     `yaml:"kafka"`
	Collector Collector `yaml:"collector"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"INFO"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

type Client struct {
	APIKey         string        `yaml:"api_key" env:"BEACON_API_KEY" env-default:"dev-key"`
	APIKeyHeader   string        `yaml:"api_key_header" env:"BEACON_API_KEY_HEADER" env-default:"X-API-Key"`
	Endpoint       string        `yaml:"endpoint" env:"BEACON_ENDPOINT" env-default:"http://localhost:3000/v1/batch"`
	Transport      string        `yaml:"transport" env:"BEACON_TRANSPORT" env-default:"http"`
	AnonymousID    string        `yaml:"anonymous_id" env:"BEACON_ANONYMOUS_ID"`
	FlushInterval  time.Duration `yaml:"flush_interval" env:"BEACON_FLUSH_INTERVAL" env-default:"5s"`
	MaxBatchSize   int           `yaml:"max_batch_size" env:"BEACON_MAX_BATCH_SIZE" env-default:"10"`
	MaxRetries     int           `yaml:"max_retries" env:"BEACON_MAX_RETRIES" env-default:"3"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" env:"BEACON_RETRY_BASE_DELAY" env-default:"1s"`
	SendTimeout    time.Duration `yaml:"send_timeout" env:"BEACON_SEND_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Path      string `yaml:"path" env:"STORAGE_PATH"`
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisKey  string `yaml:"redis_key" env:"REDIS_KEY" env-default:"beacon:pending"`
}

// FilePath returns Path, or the default file name for the driver when Path
// is empty.
func (s Storage) FilePath() string {
	if s.Path != "" {
		return s.Path
	}
	if s.Driver == "sqlite" {
		return "beacon_messages.db"
	}
	return "beacon_messages.json"
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"analytics-mobile"`
}

type Collector struct {
	Addr         string  `yaml:"addr" env:"COLLECTOR_ADDR" env-default:":3000"`
	APIKey       string  `yaml:"api_key" env:"COLLECTOR_API_KEY" env-default:"dev-key"`
	APIKeyHeader string  `yaml:"api_key_header" env:"COLLECTOR_API_KEY_HEADER" env-default:"X-API-Key"`
	ProjectID    string  `yaml:"project_id" env:"COLLECTOR_PROJECT_ID" env-default:"default"`
	MaxBodyBytes int64   `yaml:"max_body_bytes" env:"COLLECTOR_MAX_BODY_BYTES" env-default:"524288"`
	RateLimit    float64 `yaml:"rate_limit" env:"COLLECTOR_RATE_LIMIT" env-default:"0"`
	Burst        int     `yaml:"burst" env:"COLLECTOR_BURST" env-default:"50"`
}

// DefaultPath is read when Load is given an empty path.
const DefaultPath = "config.yaml"

// Load reads the YAML file at path and lets environment variables override
// it. A missing file falls back to environment variables and defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		return cfg, nil
	}

	// ReadConfig applies env overrides after parsing the file.
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}
