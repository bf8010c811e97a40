package news

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news/perplexity"
)

// Completer is the upstream dependency of the search pipeline. The
// Perplexity client satisfies it; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, messages []perplexity.Message) (*perplexity.Completion, error)
}

// Service runs the search pipeline: validate, build prompt, call upstream,
// parse. Rate limiting and HTTP mapping live in the server layer.
type Service struct {
	client Completer
	parser *Parser
	rules  TickerRules
	logger *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithTickerRules overrides the default ticker validation rules.
func WithTickerRules(rules TickerRules) Option {
	return func(s *Service) { s.rules = rules }
}

// NewService wires the pipeline together.
func NewService(client Completer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client: client,
		parser: NewParser(logger),
		rules:  DefaultTickerRules(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search validates rawTicker and resolves the latest news for it. Errors
// belong to the apperrors taxonomy so callers can map them exhaustively.
func (s *Service) Search(ctx context.Context, rawTicker string) (*SearchResult, error) {
	ticker, err := s.rules.Validate(rawTicker)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(ticker)
	messages := []perplexity.Message{
		{Role: "system", Content: prompt.System},
		{Role: "user", Content: prompt.User},
	}

	completion, err := s.client.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	items, err := s.parser.Parse(completion.Content)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search completed",
		zap.String("ticker", ticker),
		zap.Int("items", len(items)),
		zap.Int("total_tokens", completion.Usage.TotalTokens))

	return &SearchResult{
		Ticker: ticker,
		News:   items,
		Usage: TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}, nil
}
