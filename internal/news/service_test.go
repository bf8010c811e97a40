package news

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/news/perplexity"
)

type fakeCompleter struct {
	completion *perplexity.Completion
	err        error
	gotMsgs    []perplexity.Message
	calls      int
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []perplexity.Message) (*perplexity.Completion, error) {
	f.calls++
	f.gotMsgs = messages
	if f.err != nil {
		return nil, f.err
	}
	return f.completion, nil
}

func TestServiceSearchHappyPath(t *testing.T) {
	fake := &fakeCompleter{
		completion: &perplexity.Completion{
			Content: `[{"title":"T","summary":"S","date":"2024-01-01","source":"R","url":"https://x","impact_level":"HIGH","tags":["earnings"]}]`,
			Usage:   perplexity.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
		},
	}
	svc := NewService(fake, nil)

	result, err := svc.Search(context.Background(), "aapl")
	require.NoError(t, err)
	require.Equal(t, "AAPL", result.Ticker)
	require.Len(t, result.News, 1)
	require.Equal(t, "T", result.News[0].Title)
	require.Equal(t, TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, result.Usage)

	// Two-message conversation: fixed system policy plus per-ticker user
	// instruction with the normalized symbol.
	require.Len(t, fake.gotMsgs, 2)
	require.Equal(t, "system", fake.gotMsgs[0].Role)
	require.Equal(t, "user", fake.gotMsgs[1].Role)
	require.Contains(t, fake.gotMsgs[1].Content, "AAPL")
}

func TestServiceSearchInvalidTickerSkipsUpstream(t *testing.T) {
	fake := &fakeCompleter{}
	svc := NewService(fake, nil)

	_, err := svc.Search(context.Background(), "AA PL")
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Zero(t, fake.calls, "invalid ticker must not reach the provider")
}

func TestServiceSearchPropagatesUpstreamErrors(t *testing.T) {
	upstreamErr := &apperrors.UpstreamHTTPError{StatusCode: 502, Body: "bad gateway"}
	svc := NewService(&fakeCompleter{err: upstreamErr}, nil)

	_, err := svc.Search(context.Background(), "TSLA")
	require.Error(t, err)

	var uerr *apperrors.UpstreamHTTPError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, 502, uerr.StatusCode)
}

func TestServiceSearchSingleUpstreamCall(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("connection refused")}
	svc := NewService(fake, nil)

	_, err := svc.Search(context.Background(), "NVDA")
	require.Error(t, err)
	require.Equal(t, 1, fake.calls, "no retries")
}

func TestServiceSearchParseFailure(t *testing.T) {
	fake := &fakeCompleter{completion: &perplexity.Completion{Content: `[{"broken`}}
	svc := NewService(fake, nil)

	_, err := svc.Search(context.Background(), "MSFT")
	require.Error(t, err)

	var perr *apperrors.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestServiceSearchNoNewsIsSuccess(t *testing.T) {
	fake := &fakeCompleter{completion: &perplexity.Completion{Content: "No hay noticias relevantes."}}
	svc := NewService(fake, nil)

	result, err := svc.Search(context.Background(), "GOOG")
	require.NoError(t, err)
	require.Empty(t, result.News)
	require.NotNil(t, result.News)
}
