package news

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/observability"
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```[a-z]*\\s*")
	fenceClose = regexp.MustCompile("```\\s*$")
)

// Parser turns free-form completion text into fully-populated news items.
//
// It never fails on malformed input except for one documented case: a JSON
// candidate was located in the text but could not be decoded. Text with no
// JSON at all yields an empty slice and a warning.
type Parser struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewParser returns a parser logging through the given logger.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger, now: time.Now}
}

// Parse extracts and sanitizes news items from raw completion text. Item
// order is preserved from the upstream response.
func (p *Parser) Parse(raw string) ([]NewsItem, error) {
	candidate, found := extractCandidate(raw)
	if !found {
		p.logger.Warn("no JSON found in completion, returning empty result",
			observability.SanitizeField("raw_content", raw))
		return []NewsItem{}, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &apperrors.ParseError{Err: err}
	}

	switch value := parsed.(type) {
	case []any:
		return p.sanitize(value), nil
	default:
		return p.sanitize([]any{value}), nil
	}
}

// extractCandidate locates the JSON payload inside completion text. It
// strips surrounding whitespace and markdown code fences, then searches for
// the first array-looking substring, falling back to the first object.
//
// The search is a best-effort substring match (first bracket to last
// bracket), not a JSON tokenizer; sibling top-level arrays in surrounding
// prose can be mis-extracted. Kept for compatibility with how providers
// actually wrap their output.
func extractCandidate(raw string) (string, bool) {
	clean := strings.TrimSpace(raw)
	clean = fenceOpen.ReplaceAllString(clean, "")
	clean = fenceClose.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	if start, end := strings.Index(clean, "["), strings.LastIndex(clean, "]"); start >= 0 && end > start {
		return clean[start : end+1], true
	}
	if start, end := strings.Index(clean, "{"), strings.LastIndex(clean, "}"); start >= 0 && end > start {
		return clean[start : end+1], true
	}
	return "", false
}

// sanitize coerces decoded candidates into the strict NewsItem shape.
// Candidates that are not objects with a string title and summary are
// dropped; everything else gets per-field fallbacks.
func (p *Parser) sanitize(candidates []any) []NewsItem {
	items := make([]NewsItem, 0, len(candidates))
	for _, candidate := range candidates {
		obj, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		title, ok := obj["title"].(string)
		if !ok {
			continue
		}
		summary, ok := obj["summary"].(string)
		if !ok {
			continue
		}

		items = append(items, NewsItem{
			Title:       stringOr(title, fallbackTitle),
			Summary:     stringOr(summary, fallbackSummary),
			Date:        stringOr(stringField(obj, "date"), p.now().Format("2006-01-02")),
			Source:      stringOr(stringField(obj, "source"), fallbackSource),
			URL:         stringOr(stringField(obj, "url"), fallbackURL),
			ImpactLevel: impactOrDefault(stringField(obj, "impact_level")),
			Tags:        stringTags(obj["tags"]),
		})
	}
	return items
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func impactOrDefault(level string) string {
	switch level {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return level
	default:
		return ImpactMedium
	}
}

// stringTags keeps only string elements, preserving order and duplicates.
// Non-sequence values yield an empty slice.
func stringTags(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if s, ok := tag.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
