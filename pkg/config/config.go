package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled      bool   `yaml:"enabled"`
		Path         string `yaml:"path"`
		ChangePolicy string `yaml:"change_policy"`
	} `yaml:"metrics"`
	Series struct {
		Mode     string `yaml:"mode"`
		Seed     uint32 `yaml:"seed"`
		SimStart int    `yaml:"sim_start"`
		SimEnd   int    `yaml:"sim_end"`
		Assets   bool   `yaml:"assets"`
	} `yaml:"series"`
	Cache struct {
		TTL           time.Duration `yaml:"ttl"`
		MemoryMaxSize int           `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Export struct {
		OnStart   bool          `yaml:"on_start"`
		Timeout   time.Duration `yaml:"timeout"`
		RateLimit struct {
			Burst     float64 `yaml:"burst"`
			PerMinute float64 `yaml:"per_minute"`
		} `yaml:"rate_limit"`
		ClickHouse struct {
			Enabled          bool          `yaml:"enabled"`
			Host             string        `yaml:"host"`
			Port             int           `yaml:"port"`
			Database         string        `yaml:"database"`
			User             string        `yaml:"user"`
			Password         string        `yaml:"password"`
			Table            string        `yaml:"table"`
			UseHTTP          bool          `yaml:"use_http"`
			AsyncInsert      bool          `yaml:"async_insert"`
			DialTimeout      time.Duration `yaml:"dial_timeout"`
			ReadTimeout      time.Duration `yaml:"read_timeout"`
			MaxExecutionTime time.Duration `yaml:"max_execution_time"`
		} `yaml:"clickhouse"`
		Kafka struct {
			Enabled      bool          `yaml:"enabled"`
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			RequiredAcks int           `yaml:"required_acks"`
			Compression  string        `yaml:"compression"`
			MaxAttempts  int           `yaml:"max_attempts"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"kafka"`
	} `yaml:"export"`
}

// Default returns a configuration that runs the annual series with no external services.
func Default() *Config {
	var c Config
	c.Environment = "development"
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 10 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Server.CORSOrigins = []string{"*"}
	c.Logging.Level = "info"
	c.Logging.Format = "json"
	c.Logging.Output = "stdout"
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Metrics.ChangePolicy = "cagr"
	c.Series.Mode = "annual"
	c.Series.Seed = 42
	c.Series.SimStart = 2020
	c.Series.SimEnd = 2025
	c.Series.Assets = true
	c.Cache.TTL = time.Hour
	c.Cache.MemoryMaxSize = 64
	c.Cache.Redis.Port = 6379
	c.Cache.Redis.Prefix = "denominator"
	c.Export.Timeout = 30 * time.Second
	c.Export.RateLimit.Burst = 3
	c.Export.RateLimit.PerMinute = 6
	c.Export.ClickHouse.Port = 9000
	c.Export.ClickHouse.Database = "default"
	c.Export.ClickHouse.Table = "liquidity_series"
	c.Export.Kafka.Topic = "liquidity.series"
	c.Export.Kafka.RequiredAcks = -1
	c.Export.Kafka.Compression = "gzip"
	c.Export.Kafka.MaxAttempts = 3
	c.Export.Kafka.BatchSize = 200
	c.Export.Kafka.WriteTimeout = 10 * time.Second
	return &c
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(b []byte) (*Config, error) {
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// LoadWithEnv loads config from YAML, applies environment overrides, then validates.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func decode(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("DENOMINATOR_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("SERIES_MODE"); v != "" {
		c.Series.Mode = v
	}
	if v := getenv("CHANGE_POLICY"); v != "" {
		c.Metrics.ChangePolicy = v
	}
	if v := getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, err := net.SplitHostPort(v)
		if err != nil {
			return fmt.Errorf("REDIS_ADDR: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("REDIS_ADDR port: %w", err)
		}
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		c.Cache.Redis.Port = p
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Export.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("CLICKHOUSE_HOST"); v != "" {
		c.Export.ClickHouse.Host = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Series.Mode {
	case "annual", "hybrid":
	default:
		return fmt.Errorf("series.mode must be 'annual' or 'hybrid', got '%s'", c.Series.Mode)
	}
	if c.Series.Mode == "hybrid" && c.Series.SimEnd < c.Series.SimStart {
		return fmt.Errorf("series.sim_end (%d) is before series.sim_start (%d)", c.Series.SimEnd, c.Series.SimStart)
	}
	switch c.Metrics.ChangePolicy {
	case "cagr", "yoy":
	default:
		return fmt.Errorf("metrics.change_policy must be 'cagr' or 'yoy', got '%s'", c.Metrics.ChangePolicy)
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required when redis is enabled")
	}
	if c.Export.RateLimit.Burst < 0 || c.Export.RateLimit.PerMinute < 0 {
		return fmt.Errorf("export.rate_limit values cannot be negative")
	}
	if c.Export.ClickHouse.Enabled {
		if c.Export.ClickHouse.Host == "" {
			return fmt.Errorf("export.clickhouse.host is required when clickhouse export is enabled")
		}
		if c.Export.ClickHouse.Table == "" {
			return fmt.Errorf("export.clickhouse.table cannot be empty")
		}
	}
	if c.Export.Kafka.Enabled {
		if len(c.Export.Kafka.Brokers) == 0 {
			return fmt.Errorf("export.kafka.brokers cannot be empty when kafka export is enabled")
		}
		if c.Export.Kafka.Topic == "" {
			return fmt.Errorf("export.kafka.topic cannot be empty")
		}
	}
	return nil
}
