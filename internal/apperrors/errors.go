// Package apperrors defines the error taxonomy for the news-search pipeline.
//
// Every error carries an HTTP status and a short user-safe message in
// Spanish. Raw upstream bodies and internal detail stay out of user-facing
// messages; they travel only through the structured logger.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a rejected ticker before any upstream work.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a validation failure with a user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// RateLimitError reports a request rejected by the rate limiter.
type RateLimitError struct {
	RetryIn string
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

// ConfigurationError reports missing or invalid configuration discovered at
// request time. Startup validation should make this unreachable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// UpstreamTimeoutError reports that the provider call exceeded its deadline.
type UpstreamTimeoutError struct {
	Err error
}

func (e *UpstreamTimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream timeout: %v", e.Err)
	}
	return "upstream timeout"
}

func (e *UpstreamTimeoutError) Unwrap() error {
	return e.Err
}

// UpstreamHTTPError reports a non-2xx provider response. StatusCode is
// passed through to the client; Body is log-only.
type UpstreamHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream request failed: status %d: %s", e.StatusCode, e.Body)
}

// EmptyContentError reports a well-formed provider response that carried no
// completion text.
type EmptyContentError struct{}

func (e *EmptyContentError) Error() string {
	return "empty upstream content"
}

// ParseError reports completion text from which a JSON candidate was
// extracted but could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// User-facing messages. All content shown to clients is Spanish, matching
// the rest of the product surface.
const (
	msgRateLimited  = "Demasiadas solicitudes. Por favor, espera un momento antes de intentar de nuevo."
	msgNoAPIKey     = "El servicio de búsqueda no está configurado"
	msgTimeout      = "La búsqueda tardó demasiado. Por favor, inténtalo de nuevo."
	msgUpstream     = "Error del proveedor de búsqueda"
	msgEmptyContent = "No se recibió respuesta de la API"
	msgParseFailed  = "Error al parsear la respuesta de la API"
	msgInternal     = "Error interno del servidor"
)

// HTTPStatus maps an error to the status code the handler must return.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		rateLimit  *RateLimitError
		timeout    *UpstreamTimeoutError
		upstream   *UpstreamHTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstream):
		return upstream.StatusCode
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage maps an error to a short display-safe message. Validation
// errors carry their own message; everything else uses a fixed string so no
// internal detail can leak.
func UserMessage(err error) string {
	var (
		validation *ValidationError
		rateLimit  *RateLimitError
		config     *ConfigurationError
		timeout    *UpstreamTimeoutError
		upstream   *UpstreamHTTPError
		empty      *EmptyContentError
		parse      *ParseError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &rateLimit):
		return msgRateLimited
	case errors.As(err, &config):
		return msgNoAPIKey
	case errors.As(err, &timeout):
		return msgTimeout
	case errors.As(err, &upstream):
		return fmt.Sprintf("%s: %d", msgUpstream, upstream.StatusCode)
	case errors.As(err, &empty):
		return msgEmptyContent
	case errors.As(err, &parse):
		return msgParseFailed
	default:
		return msgInternal
	}
}
