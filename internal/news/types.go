// Package news implements the stock-news search pipeline: ticker
// validation, prompt construction, and tolerant parsing of the provider's
// completion text into a strict item schema.
package news

// Impact levels for a news item. Anything else coming back from the
// provider is coerced to ImpactMedium.
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	ImpactLow    = "LOW"
)

// Fallbacks applied during sanitization. Natural-language placeholders are
// Spanish like the rest of the content.
const (
	fallbackTitle   = "Sin título"
	fallbackSummary = "Sin resumen"
	fallbackSource  = "Fuente desconocida"
	fallbackURL     = "#"
)

// NewsItem is a fully-populated news entry. The parser guarantees every
// field is set; consumers never see partial items.
type NewsItem struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Date        string   `json:"date"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	ImpactLevel string   `json:"impact_level"`
	Tags        []string `json:"tags"`
}

// TokenUsage carries the provider's token accounting for one completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// SearchResult is the assembled response for one search request.
type SearchResult struct {
	Ticker string     `json:"ticker"`
	News   []NewsItem `json:"news"`
	Usage  TokenUsage `json:"usage"`
}
