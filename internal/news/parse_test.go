package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
)

const wellFormedArray = `[{"title":"T","summary":"S","date":"2024-01-01","source":"R","url":"https://x","impact_level":"HIGH","tags":["earnings"]}]`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p := NewParser(nil)
	p.now = func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestParseWellFormedArrayPassesThrough(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(wellFormedArray)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, NewsItem{
		Title:       "T",
		Summary:     "S",
		Date:        "2024-01-01",
		Source:      "R",
		URL:         "https://x",
		ImpactLevel: "HIGH",
		Tags:        []string{"earnings"},
	}, items[0])
}

func TestParseAppliesFallbacks(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"title":"T","summary":"S"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "2025-03-15", items[0].Date)
	require.Equal(t, "Fuente desconocida", items[0].Source)
	require.Equal(t, "#", items[0].URL)
	require.Equal(t, "MEDIUM", items[0].ImpactLevel)
	require.Equal(t, []string{}, items[0].Tags)
}

func TestParseCoercesInvalidImpactLevel(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"title":"T","summary":"S","impact_level":"CRITICAL"}]`)
	require.NoError(t, err)
	require.Equal(t, "MEDIUM", items[0].ImpactLevel)

	items, err = p.Parse(`[{"title":"T","summary":"S","impact_level":"LOW"}]`)
	require.NoError(t, err)
	require.Equal(t, "LOW", items[0].ImpactLevel)
}

func TestParseFiltersNonStringTags(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"title":"T","summary":"S","tags":["earnings",42,null,"ceo"]}]`)
	require.NoError(t, err)
	require.Equal(t, []string{"earnings", "ceo"}, items[0].Tags)

	items, err = p.Parse(`[{"title":"T","summary":"S","tags":"earnings"}]`)
	require.NoError(t, err)
	require.Equal(t, []string{}, items[0].Tags)
}

func TestParseStripsMarkdownFences(t *testing.T) {
	p := newTestParser(t)

	plain, err := p.Parse(wellFormedArray)
	require.NoError(t, err)

	fenced, err := p.Parse("```json\n" + wellFormedArray + "\n```")
	require.NoError(t, err)
	require.Equal(t, plain, fenced)

	untagged, err := p.Parse("```\n" + wellFormedArray + "\n```")
	require.NoError(t, err)
	require.Equal(t, plain, untagged)
}

func TestParseHardRejectsItemsWithoutTitleOrSummary(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"foo":"bar"}]`)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = p.Parse(`[{"title":"T"},{"summary":"S"},{"title":"T","summary":"S"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestParseDropsNonObjectCandidates(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`["just a string",{"title":"T","summary":"S"},7]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestParseWrapsSingleObject(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`Aquí está la noticia: {"title":"T","summary":"S"}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "T", items[0].Title)
}

func TestParseExtractsArrayFromSurroundingProse(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse("Estas son las noticias:\n" + wellFormedArray + "\nEspero que te sirvan.")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestParseNoJSONReturnsEmpty(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse("No encontré noticias relevantes para ese ticker.")
	require.NoError(t, err)
	require.Empty(t, items)
	require.NotNil(t, items)
}

func TestParseInvalidJSONCandidateFails(t *testing.T) {
	p := newTestParser(t)

	_, err := p.Parse(`[{"title": "unterminated]`)
	require.Error(t, err)

	var perr *apperrors.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseEmptyArray(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse("[]")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestParsePreservesItemOrder(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"title":"primera","summary":"s"},{"title":"segunda","summary":"s"},{"title":"tercera","summary":"s"}]`)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "primera", items[0].Title)
	require.Equal(t, "segunda", items[1].Title)
	require.Equal(t, "tercera", items[2].Title)
}

func TestParseEmptyTitleGetsFallback(t *testing.T) {
	p := newTestParser(t)

	items, err := p.Parse(`[{"title":"","summary":""}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Sin título", items[0].Title)
	require.Equal(t, "Sin resumen", items[0].Summary)
}
