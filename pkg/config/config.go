package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
		BasePath        string        `yaml:"base_path"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	RateLimit struct {
		Enabled bool          `yaml:"enabled"`
		RPS     float64       `yaml:"rps" default:"10" validate:"gte=0"`
		Burst   int           `yaml:"burst" default:"20" validate:"gte=0"`
		TTL     time.Duration `yaml:"ttl" default:"10m"`
	} `yaml:"rate_limit"`
	Upstream struct {
		Timeout       time.Duration `yaml:"timeout" default:"10s"`
		CoinGecko     Provider      `yaml:"coingecko"`
		Dexscreener   Provider      `yaml:"dexscreener"`
		CryptoCompare Provider      `yaml:"cryptocompare"`
	} `yaml:"upstream"`
	Pipeline struct {
		SaturationOffset     float64 `yaml:"saturation_offset" default:"5"`
		SaturationSpan       float64 `yaml:"saturation_span" default:"10" validate:"gt=0"`
		CatalogExtrapolation float64 `yaml:"catalog_extrapolation" default:"0.002"`
		DexTokenMinLength    int     `yaml:"dex_token_min_length" default:"20" validate:"gt=0"`
	} `yaml:"pipeline"`
	News struct {
		CacheTTL     time.Duration `yaml:"cache_ttl" default:"5m"`
		DefaultLimit int           `yaml:"default_limit" default:"10" validate:"gt=0"`
	} `yaml:"news"`
	Cache struct {
		Driver string `yaml:"driver" default:"memory" validate:"oneof=memory redis layered"`
		Prefix string `yaml:"prefix" default:"cryptointel"`
		Redis  struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	// Queue carries alert events over Redis (cache.redis) when Kafka is disabled.
	Queue struct {
		Enabled    bool          `yaml:"enabled"`
		KeyPrefix  string        `yaml:"key_prefix" default:"cryptointel:queue"`
		Workers    int           `yaml:"workers" default:"1" validate:"gte=1"`
		RetryLimit int           `yaml:"retry_limit" default:"3" validate:"gte=0"`
		RetryDelay time.Duration `yaml:"retry_delay" default:"10s"`
	} `yaml:"queue"`
	Store struct {
		Driver        string `yaml:"driver" default:"postgrest" validate:"oneof=postgrest postgres sqlite"`
		DefaultUserID string `yaml:"default_user_id" default:"00000000-0000-0000-0000-000000000001" validate:"omitempty,uuid"`
		PostgREST     struct {
			URL string `yaml:"url"`
			Key string `yaml:"key"`
		} `yaml:"postgrest"`
		DSN     string `yaml:"dsn"`
		Migrate bool   `yaml:"migrate" default:"true"`
	} `yaml:"store"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		AlertsTopic  string   `yaml:"alerts_topic" default:"alerts.triggered"`
		RequiredAcks int      `yaml:"required_acks" default:"1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"10ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id" default:"cryptointel-alert-history"`
			Workers    int           `yaml:"workers" default:"2"`
			BufferSize int           `yaml:"buffer_size" default:"256"`
			RetryMax   int           `yaml:"retry_max" default:"3"`
			BackoffMin time.Duration `yaml:"backoff_min" default:"100ms"`
			BackoffMax time.Duration `yaml:"backoff_max" default:"2s"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes" default:"1"`
			MaxBytes   int           `yaml:"max_bytes" default:"10485760"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"default"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
	} `yaml:"clickhouse"`
}

// Provider holds the settings of one upstream HTTP API.
type Provider struct {
	BaseURL string  `yaml:"base_url"`
	APIKey  string  `yaml:"api_key"`
	RPS     float64 `yaml:"rps" validate:"gte=0"`
	Burst   int     `yaml:"burst" validate:"gte=0"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyProviderDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from the environment. getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := getenv("STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := getenv("SUPABASE_URL"); v != "" {
		c.Store.PostgREST.URL = v
	}
	if v := getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		c.Store.PostgREST.Key = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Store.DSN = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
		c.ClickHouse.Enabled = true
	}
	if v := getenv("COINGECKO_API_KEY"); v != "" {
		c.Upstream.CoinGecko.APIKey = v
	}
}

func (c *Config) applyProviderDefaults() {
	if c.Upstream.CoinGecko.BaseURL == "" {
		c.Upstream.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Upstream.Dexscreener.BaseURL == "" {
		c.Upstream.Dexscreener.BaseURL = "https://api.dexscreener.com"
	}
	if c.Upstream.CryptoCompare.BaseURL == "" {
		c.Upstream.CryptoCompare.BaseURL = "https://min-api.cryptocompare.com"
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.Store.Driver {
	case "postgres", "sqlite":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for driver '%s'", c.Store.Driver)
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.AlertsTopic == "" {
		return fmt.Errorf("kafka.alerts_topic is required")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with '/', got '%s'", c.Server.BasePath)
	}
	return nil
}
