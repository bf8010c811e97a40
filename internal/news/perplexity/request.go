package perplexity

type chatCompletionRequest struct {
	Model               string           `json:"model"`
	Messages            []Message        `json:"messages"`
	Temperature         float64          `json:"temperature"`
	MaxTokens           int              `json:"max_tokens"`
	TopP                float64          `json:"top_p"`
	SearchRecencyFilter string           `json:"search_recency_filter,omitempty"`
	WebSearchOptions    *webSearchOption `json:"web_search_options,omitempty"`
}

type webSearchOption struct {
	SearchContextSize string `json:"search_context_size"`
}

func buildChatRequest(cfg Config, messages []Message) *chatCompletionRequest {
	req := &chatCompletionRequest{
		Model:               cfg.Model,
		Messages:            messages,
		Temperature:         cfg.Temperature,
		MaxTokens:           cfg.MaxTokens,
		TopP:                cfg.TopP,
		SearchRecencyFilter: cfg.SearchRecency,
	}
	if cfg.SearchContextSize != "" {
		req.WebSearchOptions = &webSearchOption{SearchContextSize: cfg.SearchContextSize}
	}
	return req
}
