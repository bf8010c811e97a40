// Package handlers contains the HTTP handlers for the service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/metrics"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/observability"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/ratelimit"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/server/middleware"
)

// Searcher runs the news-search pipeline. *news.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, rawTicker string) (*news.SearchResult, error)
}

// SearchHandler orchestrates one news-search request:
//
//	rate-limit check → body/ticker validation → upstream search → response
//
// Rate-limit telemetry headers are attached on every exit path from the
// single check performed at entry, so clients always see their quota state.
type SearchHandler struct {
	service  Searcher
	limiter  ratelimit.Store
	limit    int
	window   time.Duration
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSearchHandler wires the orchestrator.
func NewSearchHandler(service Searcher, limiter ratelimit.Store, limit int, window, cacheTTL time.Duration, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{
		service:  service,
		limiter:  limiter,
		limit:    limit,
		window:   window,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type searchRequest struct {
	Ticker string `json:"ticker"`
}

// ServeHTTP handles POST with a JSON body {"ticker": "..."}.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identifier := clientKey(r)

	limit := h.limiter.Check(r.Context(), identifier, h.limit, h.window)
	setRateLimitHeaders(w, limit)

	if !limit.Allowed {
		metrics.RecordSearch("rate_limited")
		h.logger.Warn("request rate limited",
			zap.String("request_id", requestID),
			zap.String("identifier", identifier),
			zap.Duration("reset_in", limit.ResetIn))
		writeError(w, &apperrors.RateLimitError{})
		return
	}

	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.RecordSearch("invalid_ticker")
		writeError(w, apperrors.NewValidationError("El ticker es requerido"))
		return
	}

	result, err := h.service.Search(r.Context(), body.Ticker)
	if err != nil {
		h.failSearch(w, r, err, body.Ticker, identifier)
		return
	}

	metrics.RecordSearch("success")
	h.logger.Info("search completed",
		zap.String("request_id", requestID),
		zap.String("ticker", result.Ticker),
		zap.Int("items", len(result.News)),
		zap.Int("total_tokens", result.Usage.TotalTokens))

	// Results are client-specific and time-sensitive; cache privately and
	// briefly.
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(h.cacheTTL.Seconds())))
	writeJSON(w, http.StatusOK, result)
}

// failSearch maps a pipeline error onto the taxonomy: user-safe message and
// status out, full detail into the log.
func (h *SearchHandler) failSearch(w http.ResponseWriter, r *http.Request, err error, rawTicker, identifier string) {
	outcome := outcomeFor(err)
	metrics.RecordSearch(outcome)

	h.logger.Error("search failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("outcome", outcome),
		zap.Int("status", apperrors.HTTPStatus(err)),
		observability.SanitizeField("ticker", rawTicker),
		observability.SanitizeField("identifier", identifier),
		observability.SanitizeField("detail", err.Error()))

	writeError(w, err)
}

func outcomeFor(err error) string {
	var (
		validation *apperrors.ValidationError
		config     *apperrors.ConfigurationError
		timeout    *apperrors.UpstreamTimeoutError
		upstream   *apperrors.UpstreamHTTPError
		empty      *apperrors.EmptyContentError
		parse      *apperrors.ParseError
	)
	switch {
	case errors.As(err, &validation):
		return "invalid_ticker"
	case errors.As(err, &config):
		return "missing_config"
	case errors.As(err, &timeout):
		return "timeout"
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.As(err, &empty):
		return "empty_content"
	case errors.As(err, &parse):
		return "parse_error"
	default:
		return "internal_error"
	}
}

// clientKey derives the rate-limit identifier from the request. RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return ratelimit.AnonymousKey
	}
	return host
}

func setRateLimitHeaders(w http.ResponseWriter, result ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int((result.ResetIn+time.Second-1)/time.Second)))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), map[string]string{"error": apperrors.UserMessage(err)})
}
