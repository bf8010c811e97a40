package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "STOCKNEWS"

// Load reads configuration from an optional YAML file plus environment
// variables and validates it eagerly. cfgFile may be empty, in which case
// only defaults and environment apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider credential also honors its conventional unprefixed name.
	_ = v.BindEnv("perplexity.api_key", envPrefix+"_PERPLEXITY_API_KEY", "PERPLEXITY_API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stocknews")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.api_key", "")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("perplexity.temperature", 0.3)
	v.SetDefault("perplexity.max_tokens", 2500)
	v.SetDefault("perplexity.top_p", 0.9)
	v.SetDefault("perplexity.search_recency", "month")
	v.SetDefault("perplexity.search_context_size", "high")
	v.SetDefault("perplexity.timeout", 30*time.Second)

	v.SetDefault("rate_limit.limit", 10)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.sweep_interval", 5*time.Minute)
	v.SetDefault("rate_limit.redis.enabled", false)
	v.SetDefault("rate_limit.redis.addr", "localhost:6379")
	v.SetDefault("rate_limit.redis.password", "")
	v.SetDefault("rate_limit.redis.db", 0)

	v.SetDefault("cache.search_ttl", 5*time.Minute)

	v.SetDefault("validation.ticker_min_length", 1)
	v.SetDefault("validation.ticker_max_length", 10)
	v.SetDefault("validation.ticker_pattern", `^[A-Z0-9.\-^]+$`)

	v.SetDefault("logging.level", "info")
	v.SetDefault("metrics.enabled", true)
}

// Validate checks every setting and reports all problems at once, so a
// misconfigured deployment fails fast with the full list instead of
// rediscovering issues one restart at a time.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "server.port: must be between 1 and 65535")
	}
	if strings.TrimSpace(c.Perplexity.APIKey) == "" {
		problems = append(problems, "perplexity.api_key: required (set PERPLEXITY_API_KEY)")
	}
	if strings.TrimSpace(c.Perplexity.Model) == "" {
		problems = append(problems, "perplexity.model: required")
	}
	if c.Perplexity.Temperature < 0 || c.Perplexity.Temperature > 2 {
		problems = append(problems, "perplexity.temperature: must be between 0 and 2")
	}
	if c.Perplexity.MaxTokens < 1 {
		problems = append(problems, "perplexity.max_tokens: must be at least 1")
	}
	if c.Perplexity.TopP <= 0 || c.Perplexity.TopP > 1 {
		problems = append(problems, "perplexity.top_p: must be in (0, 1]")
	}
	if c.Perplexity.Timeout <= 0 {
		problems = append(problems, "perplexity.timeout: must be positive")
	}
	if c.RateLimit.Limit < 1 {
		problems = append(problems, "rate_limit.limit: must be at least 1")
	}
	if c.RateLimit.Window < time.Millisecond {
		problems = append(problems, "rate_limit.window: must be at least 1ms")
	}
	if c.RateLimit.Redis.Enabled && strings.TrimSpace(c.RateLimit.Redis.Addr) == "" {
		problems = append(problems, "rate_limit.redis.addr: required when redis is enabled")
	}
	if c.Cache.SearchTTL < 0 {
		problems = append(problems, "cache.search_ttl: must not be negative")
	}
	if c.Validation.TickerMinLength < 1 {
		problems = append(problems, "validation.ticker_min_length: must be at least 1")
	}
	if c.Validation.TickerMaxLength < c.Validation.TickerMinLength {
		problems = append(problems, "validation.ticker_max_length: must be >= ticker_min_length")
	}
	if _, err := regexp.Compile(c.Validation.TickerPattern); err != nil {
		problems = append(problems, fmt.Sprintf("validation.ticker_pattern: invalid regexp: %v", err))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "logging.level: must be one of debug, info, warn, error")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// TickerPatternRegexp returns the compiled ticker pattern. Validate must
// have succeeded first.
func (c *Config) TickerPatternRegexp() *regexp.Regexp {
	return regexp.MustCompile(c.Validation.TickerPattern)
}
