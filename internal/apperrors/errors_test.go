package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewValidationError("ticker inválido"), http.StatusBadRequest},
		{"rate limit", &RateLimitError{}, http.StatusTooManyRequests},
		{"configuration", &ConfigurationError{Reason: "api key missing"}, http.StatusInternalServerError},
		{"timeout", &UpstreamTimeoutError{}, http.StatusGatewayTimeout},
		{"upstream passthrough", &UpstreamHTTPError{StatusCode: http.StatusBadGateway}, http.StatusBadGateway},
		{"empty content", &EmptyContentError{}, http.StatusInternalServerError},
		{"parse", &ParseError{Err: errors.New("bad json")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("search failed: %w", &UpstreamTimeoutError{Err: errors.New("deadline exceeded")})
	require.Equal(t, http.StatusGatewayTimeout, HTTPStatus(err))
}

func TestUserMessageNeverLeaksUpstreamBody(t *testing.T) {
	err := &UpstreamHTTPError{StatusCode: 401, Body: `{"error":"invalid api key sk-12345"}`}
	msg := UserMessage(err)
	require.NotContains(t, msg, "sk-12345")
	require.Contains(t, msg, "401")
}

func TestUserMessageValidationPassesThrough(t *testing.T) {
	err := NewValidationError("Ticker inválido. Solo se permiten letras, números, puntos y guiones (1-10 caracteres)")
	require.Equal(t, "Ticker inválido. Solo se permiten letras, números, puntos y guiones (1-10 caracteres)", UserMessage(err))
}

func TestUserMessageIsSpanishForEveryKind(t *testing.T) {
	for _, err := range []error{
		&RateLimitError{},
		&ConfigurationError{Reason: "x"},
		&UpstreamTimeoutError{},
		&EmptyContentError{},
		&ParseError{Err: errors.New("x")},
		errors.New("unknown"),
	} {
		require.NotEmpty(t, UserMessage(err))
	}
}
