// Package config provides centralized configuration for the service. All
// values are overridable through a YAML file or STOCKNEWS_-prefixed
// environment variables; the provider credential also honors the bare
// PERPLEXITY_API_KEY variable.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Perplexity PerplexityConfig `mapstructure:"perplexity"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Validation ValidationConfig `mapstructure:"validation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PerplexityConfig contains the upstream provider endpoint, credential, and
// generation parameters.
type PerplexityConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`

	// Temperature controls sampling randomness.
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens caps completion length.
	MaxTokens int `mapstructure:"max_tokens"`
	// TopP is the nucleus-sampling threshold.
	TopP float64 `mapstructure:"top_p"`
	// SearchRecency bounds source freshness (e.g. "month").
	SearchRecency string `mapstructure:"search_recency"`
	// SearchContextSize hints retrieval breadth (e.g. "high").
	SearchContextSize string `mapstructure:"search_context_size"`
	// Timeout is the hard wall-clock bound on one provider call.
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig contains the fixed-window limiter settings.
type RateLimitConfig struct {
	Limit         int           `mapstructure:"limit"`
	Window        time.Duration `mapstructure:"window"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	Redis         RedisConfig   `mapstructure:"redis"`
}

// RedisConfig selects the shared rate-limit store for multi-process
// deployments. Disabled by default; the in-memory store is used instead.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the Cache-Control directive on successful searches.
type CacheConfig struct {
	SearchTTL time.Duration `mapstructure:"search_ttl"`
}

// ValidationConfig bounds accepted ticker symbols.
type ValidationConfig struct {
	TickerMinLength int    `mapstructure:"ticker_min_length"`
	TickerMaxLength int    `mapstructure:"ticker_max_length"`
	TickerPattern   string `mapstructure:"ticker_pattern"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
