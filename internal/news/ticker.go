package news

import (
	"regexp"
	"strings"

	"github.com/AlvaroQ/chart-analyzer-and-stock-news/internal/apperrors"
)

// tickerErrorMessage identifies the violated rule without exposing the
// pattern itself.
const tickerErrorMessage = "Ticker inválido. Solo se permiten letras, números, puntos y guiones (1-10 caracteres)"

// defaultTickerPattern admits exchange-style symbols: BRK.B, BF-B, ^GSPC.
var defaultTickerPattern = regexp.MustCompile(`^[A-Z0-9.\-^]+$`)

// TickerRules bounds what counts as a valid ticker symbol. The defaults
// match common exchange listings; both knobs are configuration-overridable.
type TickerRules struct {
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// DefaultTickerRules returns the standard 1-10 character rule set.
func DefaultTickerRules() TickerRules {
	return TickerRules{
		MinLength: 1,
		MaxLength: 10,
		Pattern:   defaultTickerPattern,
	}
}

// Validate normalizes and validates a raw ticker symbol. The returned value
// is trimmed and upper-cased; any failure is an apperrors.ValidationError
// with a single human-readable message.
func (r TickerRules) Validate(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))

	if len(ticker) < r.MinLength || len(ticker) > r.MaxLength {
		return "", apperrors.NewValidationError(tickerErrorMessage)
	}
	if !r.Pattern.MatchString(ticker) {
		return "", apperrors.NewValidationError(tickerErrorMessage)
	}

	return ticker, nil
}

// ValidateTicker validates raw against the default rules.
func ValidateTicker(raw string) (string, error) {
	return DefaultTickerRules().Validate(raw)
}
