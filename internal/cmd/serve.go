package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/config"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news/perplexity"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/observability"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/ratelimit"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/server"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

SIGINT or SIGTERM drains in-flight requests before exiting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err := observability.NewServerLogger(level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		handlers.SetVersionInfo(versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)

		service := buildService(cfg, logger)
		store, closeStore := buildStore(cfg, logger)
		defer closeStore()

		srv := server.New(cfg, logger, service, store)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		logger.Info("server initialized",
			zap.String("version", versionInfo.Version),
			zap.Int("rate_limit", cfg.RateLimit.Limit),
			zap.Duration("rate_window", cfg.RateLimit.Window),
			zap.Bool("redis_store", cfg.RateLimit.Redis.Enabled))

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// buildService assembles the search pipeline from configuration.
func buildService(cfg *config.Config, logger *zap.Logger) *news.Service {
	client := perplexity.NewClient(perplexity.Config{
		BaseURL:           cfg.Perplexity.BaseURL,
		APIKey:            cfg.Perplexity.APIKey,
		Model:             cfg.Perplexity.Model,
		Temperature:       cfg.Perplexity.Temperature,
		MaxTokens:         cfg.Perplexity.MaxTokens,
		TopP:              cfg.Perplexity.TopP,
		SearchRecency:     cfg.Perplexity.SearchRecency,
		SearchContextSize: cfg.Perplexity.SearchContextSize,
		Timeout:           cfg.Perplexity.Timeout,
	})

	rules := news.TickerRules{
		MinLength: cfg.Validation.TickerMinLength,
		MaxLength: cfg.Validation.TickerMaxLength,
		Pattern:   cfg.TickerPatternRegexp(),
	}

	return news.NewService(client, logger, news.WithTickerRules(rules))
}

// buildStore selects the rate-limit backend: Redis when configured for
// multi-process deployments, in-memory otherwise.
func buildStore(cfg *config.Config, logger *zap.Logger) (ratelimit.Store, func()) {
	if cfg.RateLimit.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.Redis.Addr,
			Password: cfg.RateLimit.Redis.Password,
			DB:       cfg.RateLimit.Redis.DB,
		})
		return ratelimit.NewRedisStore(client, logger), func() { _ = client.Close() }
	}

	store := ratelimit.NewMemoryStore(cfg.RateLimit.SweepInterval)
	return store, store.Close
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
