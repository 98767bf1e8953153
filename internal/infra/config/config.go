package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Dataset backends understood by the food source loader.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceS3       = "s3"
	SourceValkey   = "valkey"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Recommender RecommenderConfig `yaml:"recommender"`
	Dataset     DatasetConfig     `yaml:"dataset"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RecommenderConfig tunes ranking.
type RecommenderConfig struct {
	TopK              int `yaml:"topK"`
	MaxTopK           int `yaml:"maxTopK"`
	ParallelThreshold int `yaml:"parallelThreshold"`
	Workers           int `yaml:"workers"`
}

// DatasetConfig selects and configures where the food table is read from.
type DatasetConfig struct {
	Source   string         `yaml:"source"`
	CSV      CSVConfig      `yaml:"csv"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	S3       S3Config       `yaml:"s3"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Timeout  time.Duration  `yaml:"timeout"`
}

// CSVConfig points at a local cleaned CSV export.
type CSVConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig contains DSN, pooling and table settings. OrderBy must name an
// existing column; rows are ranked with ties broken in that order.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Table    string `yaml:"table"`
	OrderBy  string `yaml:"orderBy"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SQLiteConfig points at a SQLite database file.
type SQLiteConfig struct {
	Path    string `yaml:"path"`
	Table   string `yaml:"table"`
	OrderBy string `yaml:"orderBy"`
}

// S3Config locates a CSV object in S3-compatible storage.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
}

// ValkeyConfig locates a CSV payload stored under a Valkey key.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString("HTTP_ADDRESS", &cfg.HTTP.Address)
	setDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout)
	setDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout)
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	setInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	setInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)

	setInt("RECOMMENDER_TOP_K", &cfg.Recommender.TopK)
	setInt("RECOMMENDER_MAX_TOP_K", &cfg.Recommender.MaxTopK)
	setInt("RECOMMENDER_PARALLEL_THRESHOLD", &cfg.Recommender.ParallelThreshold)
	setInt("RECOMMENDER_WORKERS", &cfg.Recommender.Workers)

	if v := os.Getenv("DATASET_SOURCE"); v != "" {
		cfg.Dataset.Source = strings.ToLower(strings.TrimSpace(v))
	}
	setDuration("DATASET_TIMEOUT", &cfg.Dataset.Timeout)
	setString("DATASET_CSV_PATH", &cfg.Dataset.CSV.Path)
	setString("DATASET_POSTGRES_DSN", &cfg.Dataset.Postgres.DSN)
	setString("DATASET_POSTGRES_TABLE", &cfg.Dataset.Postgres.Table)
	setString("DATASET_POSTGRES_ORDER_BY", &cfg.Dataset.Postgres.OrderBy)
	setInt32("DATASET_POSTGRES_MAX_CONNS", &cfg.Dataset.Postgres.MaxConns)
	setInt32("DATASET_POSTGRES_MIN_CONNS", &cfg.Dataset.Postgres.MinConns)
	setString("DATASET_SQLITE_PATH", &cfg.Dataset.SQLite.Path)
	setString("DATASET_SQLITE_TABLE", &cfg.Dataset.SQLite.Table)
	setString("DATASET_S3_ENDPOINT", &cfg.Dataset.S3.Endpoint)
	setString("DATASET_S3_ACCESS_KEY", &cfg.Dataset.S3.AccessKey)
	setString("DATASET_S3_SECRET_KEY", &cfg.Dataset.S3.SecretKey)
	setString("DATASET_S3_REGION", &cfg.Dataset.S3.Region)
	setString("DATASET_S3_BUCKET", &cfg.Dataset.S3.Bucket)
	setString("DATASET_S3_KEY", &cfg.Dataset.S3.Key)
	setString("DATASET_VALKEY_ADDR", &cfg.Dataset.Valkey.Addr)
	setString("DATASET_VALKEY_KEY", &cfg.Dataset.Valkey.Key)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setInt32(key string, dst *int32) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(parsed)
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Recommender: RecommenderConfig{
			TopK:              10,
			MaxTopK:           100,
			ParallelThreshold: 5000,
			Workers:           0,
		},
		Dataset: DatasetConfig{
			Source:  SourceCSV,
			Timeout: 30 * time.Second,
			CSV: CSVConfig{
				Path: "data/processed/foods_clean.csv",
			},
			Postgres: PostgresConfig{
				Table:    "foods",
				MaxConns: 2,
			},
			SQLite: SQLiteConfig{
				Table:   "foods",
				OrderBy: "rowid",
			},
			S3: S3Config{
				Region: "auto",
				Key:    "processed/foods_clean.csv",
			},
			Valkey: ValkeyConfig{
				Key: "nutrition:foods:csv",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Recommender.TopK <= 0 {
		return errors.New("recommender.topK must be positive")
	}
	if c.Recommender.MaxTopK > 0 && c.Recommender.MaxTopK < c.Recommender.TopK {
		return errors.New("recommender.maxTopK cannot be smaller than recommender.topK")
	}
	if c.Recommender.ParallelThreshold < 0 {
		return errors.New("recommender.parallelThreshold cannot be negative")
	}
	if c.Recommender.Workers < 0 {
		return errors.New("recommender.workers cannot be negative")
	}
	if c.Dataset.Timeout < 0 {
		return errors.New("dataset.timeout cannot be negative")
	}
	return c.Dataset.validateSource()
}

func (d DatasetConfig) validateSource() error {
	switch d.Source {
	case SourceCSV:
		if strings.TrimSpace(d.CSV.Path) == "" {
			return errors.New("dataset.csv.path cannot be empty")
		}
	case SourcePostgres:
		if strings.TrimSpace(d.Postgres.DSN) == "" {
			return errors.New("dataset.postgres.dsn cannot be empty")
		}
		if strings.TrimSpace(d.Postgres.Table) == "" {
			return errors.New("dataset.postgres.table cannot be empty")
		}
		if strings.TrimSpace(d.Postgres.OrderBy) == "" {
			return errors.New("dataset.postgres.orderBy must name a column that fixes table order")
		}
	case SourceSQLite:
		if strings.TrimSpace(d.SQLite.Path) == "" {
			return errors.New("dataset.sqlite.path cannot be empty")
		}
		if strings.TrimSpace(d.SQLite.Table) == "" {
			return errors.New("dataset.sqlite.table cannot be empty")
		}
	case SourceS3:
		if strings.TrimSpace(d.S3.Endpoint) == "" || strings.TrimSpace(d.S3.Bucket) == "" || strings.TrimSpace(d.S3.Key) == "" {
			return errors.New("dataset.s3 endpoint, bucket and key are required")
		}
	case SourceValkey:
		if strings.TrimSpace(d.Valkey.Addr) == "" || strings.TrimSpace(d.Valkey.Key) == "" {
			return errors.New("dataset.valkey addr and key are required")
		}
	default:
		return fmt.Errorf("dataset.source %q is not one of csv, postgres, sqlite, s3, valkey", d.Source)
	}
	return nil
}
