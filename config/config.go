package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL   = "https://addons-ecs.forgesvc.net"
	defaultUserAgent = "curseapi/dev (unknown-user)"
	defaultTimeout   = 5 * time.Second
)

// Config holds all configuration for the client and its provider adapters.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	BaseURL        string        `mapstructure:"CURSE_BASE_URL"`
	APIKey         string        `mapstructure:"CURSE_API_KEY"`
	UserAgent      string        `mapstructure:"USERAGENT"`
	RequestTimeout time.Duration `mapstructure:"CURSE_REQUEST_TIMEOUT"`
	CacheDBPath    string        `mapstructure:"CURSE_CACHE_DB"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"curse_base_url":        "CURSE_BASE_URL",
		"curse_api_key":         "CURSE_API_KEY",
		"useragent":             "USERAGENT",
		"curse_request_timeout": "CURSE_REQUEST_TIMEOUT",
		"curse_cache_db":        "CURSE_CACHE_DB",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "var", env, "error", bindErr)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}

	applyDefaults(&config)

	return config, nil
}

// applyDefaults fills in every optional field that was not configured.
func applyDefaults(config *Config) {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultTimeout
	}
	if config.CacheDBPath == "" {
		config.CacheDBPath = "curse-cache.db"
	}
}
