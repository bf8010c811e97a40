package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/ratelimit"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/server/handlers"
)

// registerRoutes wires all HTTP routes.
func (s *Server) registerRoutes(service *news.Service, limiter ratelimit.Store) {
	search := handlers.NewSearchHandler(
		service,
		limiter,
		s.cfg.RateLimit.Limit,
		s.cfg.RateLimit.Window,
		s.cfg.Cache.SearchTTL,
		s.logger,
	)

	s.router.Post("/api/busqueda", search.ServeHTTP)

	s.router.Get("/health", handlers.Health)
	s.router.Get("/version", handlers.Version)

	if s.cfg.Metrics.Enabled {
		s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
	}
}
