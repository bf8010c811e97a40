package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/config"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news/perplexity"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/ratelimit"
	"go.uber.org/zap"
)

type staticCompleter struct {
	content string
}

func (s staticCompleter) Complete(ctx context.Context, messages []perplexity.Message) (*perplexity.Completion, error) {
	return &perplexity.Completion{Content: s.content, Usage: perplexity.Usage{TotalTokens: 1}}, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 0},
		RateLimit: config.RateLimitConfig{Limit: 10, Window: time.Minute},
		Cache:     config.CacheConfig{SearchTTL: 5 * time.Minute},
		Metrics:   config.MetricsConfig{Enabled: true},
	}

	store := ratelimit.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	service := news.NewService(staticCompleter{content: "[]"}, zap.NewNop())
	return New(cfg, zap.NewNop(), service, store)
}

func TestRoutes(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/busqueda", `{"ticker":"AAPL"}`, http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
		{http.MethodGet, "/api/busqueda", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.RemoteAddr = "203.0.113.9:1234"
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSearchRouteAttachesRequestID(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/busqueda", strings.NewReader(`{"ticker":"AAPL"}`))
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRecoveryMiddlewareCatchesPanics(t *testing.T) {
	srv := testServer(t)
	srv.router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaput")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Error interno del servidor")
	require.NotContains(t, rec.Body.String(), "kaput")
}
