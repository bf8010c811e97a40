// Package perplexity implements the Perplexity chat-completions driver via
// direct HTTP.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/metrics"
)

const (
	defaultBaseURL = "https://api.perplexity.ai"
	defaultTimeout = 30 * time.Second
)

// Config carries the provider endpoint, credential, and generation
// parameters for every request.
type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	TopP              float64
	SearchRecency     string
	SearchContextSize string
	Timeout           time.Duration
}

// Client issues chat-completion requests against the Perplexity API.
type Client struct {
	cfg        Config
	HTTPClient *http.Client
}

// NewClient returns a client with defaults applied.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &Client{cfg: cfg}
}

// Message is one entry of the conversation sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage carries the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the extracted result of one chat-completion call.
type Completion struct {
	Content string
	Usage   Usage
}

// Complete sends a single chat-completion request bounded by the configured
// timeout. It makes exactly one attempt; retry policy belongs to callers.
//
// Failure modes map onto the apperrors taxonomy: a missing credential is a
// ConfigurationError, deadline expiry an UpstreamTimeoutError, and non-2xx
// responses an UpstreamHTTPError carrying the provider status and body.
func (c *Client) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	if c == nil {
		return nil, &apperrors.ConfigurationError{Reason: "perplexity client not configured"}
	}
	if c.cfg.APIKey == "" {
		return nil, &apperrors.ConfigurationError{Reason: "perplexity api key is required"}
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(buildChatRequest(c.cfg, messages))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	metrics.ObserveUpstream(time.Since(start))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &apperrors.UpstreamTimeoutError{Err: err}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &apperrors.UpstreamTimeoutError{Err: err}
		}
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &apperrors.UpstreamHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return toCompletion(&parsed)
}
