// Package server assembles the HTTP surface of the service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/config"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/ratelimit"
	servermw "github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/server/middleware"
)

// Server is the HTTP server for the news-search API.
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    *config.Config
	logger *zap.Logger
}

// New builds the router and middleware chain around the search pipeline.
func New(cfg *config.Config, logger *zap.Logger, service *news.Service, limiter ratelimit.Store) *Server {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestMetrics)
	r.Use(servermw.RequestLogging(logger))
	r.Use(servermw.Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Recurso no encontrado")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	s := &Server{
		router: r,
		cfg:    cfg,
		logger: logger,
	}
	s.registerRoutes(service, limiter)
	return s
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
