package api

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"

	listingdomain "github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	platformpostgres "github.com/Apurer/bizrecipe-api/internal/platform/postgres"
)

// ConfigFileEnv names an optional YAML file loaded before the environment.
const ConfigFileEnv = "CONFIG_FILE"

// envKeys maps the process environment onto configuration paths.
var envKeys = map[string]string{
	"PORT":                       "http.port",
	"SHUTDOWN_TIMEOUT":           "http.shutdownTimeout",
	"POSTGRES_DSN":               "postgres.dsn",
	"POSTGRES_MAX_OPEN_CONNS":    "postgres.maxOpenConns",
	"POSTGRES_MAX_IDLE_CONNS":    "postgres.maxIdleConns",
	"POSTGRES_CONN_MAX_LIFETIME": "postgres.connMaxLifetime",
	"REDIS_ADDR":                 "redis.addr",
	"TEMPORAL_ADDRESS":           "temporal.address",
	"TEMPORAL_NAMESPACE":         "temporal.namespace",
	"TEMPORAL_DISABLED":          "temporal.disabled",
	"SERVICE_FEE":                "pricing.serviceFee",
	"LOG_LEVEL":                  "log.level",
}

type HTTPConfig struct {
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
}

type PostgresConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"maxOpenConns"`
	MaxIdleConns    int           `koanf:"maxIdleConns"`
	ConnMaxLifetime time.Duration `koanf:"connMaxLifetime"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
}

type TemporalConfig struct {
	Address   string `koanf:"address"`
	Namespace string `koanf:"namespace"`
	Disabled  bool   `koanf:"disabled"`
}

type PricingConfig struct {
	ServiceFee string `koanf:"serviceFee"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Config carries settings for the API and worker processes.
type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	Temporal TemporalConfig `koanf:"temporal"`
	Pricing  PricingConfig  `koanf:"pricing"`
	Log      LogConfig      `koanf:"log"`

	// Parsed from the raw values above by LoadConfig.
	ServiceFee decimal.Decimal `koanf:"-"`
	LogLevel   slog.Level      `koanf:"-"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.HTTP.Port = "8080"
	cfg.HTTP.ShutdownTimeout = 10 * time.Second
	cfg.Postgres.MaxOpenConns = 10
	cfg.Postgres.MaxIdleConns = 5
	cfg.Postgres.ConnMaxLifetime = 30 * time.Minute
	cfg.Temporal.Address = client.DefaultHostPort
	cfg.Temporal.Namespace = client.DefaultNamespace
	cfg.Pricing.ServiceFee = listingdomain.DefaultServiceFee.String()
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig reads CONFIG_FILE (when set) and the environment, applies
// defaults and validates the result.
func LoadConfig() (Config, error) {
	return loadConfig(os.Environ)
}

func loadConfig(environ func() []string) (Config, error) {
	k := koanf.New(".")

	if path := lookup(environ(), ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok {
				return "", nil
			}
			value = strings.TrimSpace(value)
			if key == "TEMPORAL_DISABLED" {
				return path, isTruthy(value)
			}
			return path, value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) finalize() error {
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return fmt.Errorf("http port must not be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be a positive duration")
	}
	if c.Postgres.MaxOpenConns < 0 || c.Postgres.MaxIdleConns < 0 {
		return fmt.Errorf("postgres pool sizes must not be negative")
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(c.Pricing.ServiceFee))
	if err != nil {
		return fmt.Errorf("SERVICE_FEE must be a decimal amount: %w", err)
	}
	if fee.IsNegative() {
		return fmt.Errorf("SERVICE_FEE must not be negative")
	}
	c.ServiceFee = fee
	if err := c.LogLevel.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// ConnOptions turns the postgres settings into pool options.
func (c PostgresConfig) ConnOptions(logger *slog.Logger) platformpostgres.Options {
	return platformpostgres.Options{
		DSN:             c.DSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		Logger:          logger,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}

func lookup(environ []string, key string) string {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(kv, prefix))
		}
	}
	return ""
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
