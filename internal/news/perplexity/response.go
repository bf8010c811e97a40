package perplexity

import (
	"strings"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
)

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

type chatResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toCompletion(resp *chatCompletionResponse) (*Completion, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &apperrors.EmptyContentError{}
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, &apperrors.EmptyContentError{}
	}

	completion := &Completion{Content: content}
	if resp.Usage != nil {
		completion.Usage = *resp.Usage
	}
	return completion, nil
}
