package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"copro-billing/internal/classifier"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Log       LogConfig
	Billing   BillingConfig
	Water     WaterConfig
	Suppliers []classifier.Supplier
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string
	Mode string // gin mode: debug, release or test
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// BillingConfig holds accounting settings.
type BillingConfig struct {
	Currency          string
	FeeKeywords       []string `mapstructure:"fee_keywords"`
	DefaultShareTotal int      `mapstructure:"default_share_total"`
}

// WaterConfig holds water apportionment settings.
type WaterConfig struct {
	AnomalyThreshold float64 `mapstructure:"anomaly_threshold"`
}

// Threshold returns the anomaly threshold as a decimal.
func (w WaterConfig) Threshold() decimal.Decimal {
	return decimal.NewFromFloat(w.AnomalyThreshold)
}

// Classifier builds the transaction classifier described by the config.
func (c Config) Classifier() *classifier.Classifier {
	return classifier.New(c.Billing.FeeKeywords, c.Suppliers)
}

// Load reads configuration from an optional .env file, a TOML config file and
// the environment. Env var overrides use prefix COPRO_.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "copro", "copro.db"))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("billing.currency", "EUR")
	v.SetDefault("billing.fee_keywords", classifier.DefaultFeeKeywords)
	v.SetDefault("billing.default_share_total", 1000)
	v.SetDefault("water.anomaly_threshold", 1000.0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COPRO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "copro"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COPRO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Billing.DefaultShareTotal <= 0 {
		return Config{}, fmt.Errorf("billing.default_share_total must be positive, got %d", c.Billing.DefaultShareTotal)
	}
	return c, nil
}
