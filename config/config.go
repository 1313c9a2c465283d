package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Logger LoggerConfig `yaml:"logger"`
	Store  StoreConfig  `yaml:"store"`
	Ledger LedgerConfig `yaml:"ledger"`
}

type ServerConfig struct {
	AppEnv string `yaml:"app_env"`
}

type LoggerConfig struct {
	Level             string `yaml:"level"`
	Encoding          string `yaml:"encoding"`
	DisableCaller     bool   `yaml:"disable_caller"`
	DisableStacktrace bool   `yaml:"disable_stacktrace"`
	Filename          string `yaml:"filename"`
}

type StoreConfig struct {
	Path           string `yaml:"path"`
	BusyTimeoutMS  int    `yaml:"busy_timeout_ms"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	RetryAttempts  int    `yaml:"retry_attempts"`
	RetryBackoffMS int    `yaml:"retry_backoff_ms"`
}

type LedgerConfig struct {
	Currency          string `yaml:"currency"`
	LowStockThreshold int64  `yaml:"low_stock_threshold"`
	SummaryLocation   string `yaml:"summary_location"`
	SearchLimit       int    `yaml:"search_limit"`
}

// Default returns the built-in configuration used when neither a file nor
// the environment sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: "production",
		},
		Logger: LoggerConfig{
			Level:             "info",
			Encoding:          "console",
			DisableCaller:     false,
			DisableStacktrace: true,
		},
		Store: StoreConfig{
			Path:           "inventory.db",
			BusyTimeoutMS:  5000,
			MaxOpenConns:   1,
			RetryAttempts:  3,
			RetryBackoffMS: 100,
		},
		Ledger: LedgerConfig{
			Currency:          "USD",
			LowStockThreshold: 5,
			SummaryLocation:   "UTC",
			SearchLimit:       5,
		},
	}
}

// Load reads the optional YAML file named by LEDGER_CONFIG_FILE and then
// applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()
	if path, ok := os.LookupEnv("LEDGER_CONFIG_FILE"); ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadEnv builds the configuration from defaults and environment only.
func LoadEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.AppEnv = getEnv("APP_ENV", c.Server.AppEnv)

	c.Logger.Level = getEnv("LOGGER_LEVEL", c.Logger.Level)
	c.Logger.Encoding = getEnv("LOGGER_ENCODING", c.Logger.Encoding)
	c.Logger.DisableCaller = getEnvBool("LOGGER_DISABLE_CALLER", c.Logger.DisableCaller)
	c.Logger.DisableStacktrace = getEnvBool("LOGGER_DISABLE_STACKTRACE", c.Logger.DisableStacktrace)
	c.Logger.Filename = getEnv("LOGGER_FILENAME", c.Logger.Filename)

	c.Store.Path = getEnv("STORE_PATH", c.Store.Path)
	c.Store.BusyTimeoutMS = getEnvInt("STORE_BUSY_TIMEOUT_MS", c.Store.BusyTimeoutMS)
	c.Store.MaxOpenConns = getEnvInt("STORE_MAX_OPEN_CONNS", c.Store.MaxOpenConns)
	c.Store.RetryAttempts = getEnvInt("STORE_RETRY_ATTEMPTS", c.Store.RetryAttempts)
	c.Store.RetryBackoffMS = getEnvInt("STORE_RETRY_BACKOFF_MS", c.Store.RetryBackoffMS)

	c.Ledger.Currency = strings.ToUpper(getEnv("LEDGER_CURRENCY", c.Ledger.Currency))
	c.Ledger.LowStockThreshold = int64(getEnvInt("LEDGER_LOW_STOCK_THRESHOLD", int(c.Ledger.LowStockThreshold)))
	c.Ledger.SummaryLocation = getEnv("LEDGER_SUMMARY_LOCATION", c.Ledger.SummaryLocation)
	c.Ledger.SearchLimit = getEnvInt("LEDGER_SEARCH_LIMIT", c.Ledger.SearchLimit)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
