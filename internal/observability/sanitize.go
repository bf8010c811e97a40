package observability

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// redactedPlaceholder replaces values whose key looks sensitive.
	redactedPlaceholder = "[REDACTED]"

	// maxFieldLen bounds string values in log context. Completion bodies can
	// run to thousands of characters; logs keep a prefix only.
	maxFieldLen = 500
)

// sensitiveKeys are matched as substrings of the lower-cased field key.
var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"apikey",
	"authorization",
	"cookie",
}

// SanitizeFields converts a context map into zap fields, redacting values
// under sensitive-looking keys and truncating overlong strings.
func SanitizeFields(context map[string]any) []zap.Field {
	if len(context) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(context))
	for key, value := range context {
		fields = append(fields, SanitizeField(key, value))
	}
	return fields
}

// SanitizeField builds a single zap field with redaction and truncation
// applied.
func SanitizeField(key string, value any) zap.Field {
	if isSensitiveKey(key) {
		return zap.String(key, redactedPlaceholder)
	}
	if s, ok := value.(string); ok && len(s) > maxFieldLen {
		return zap.String(key, s[:maxFieldLen]+"...[truncated]")
	}
	return zap.Any(key, value)
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(lower, sk) {
			return true
		}
	}
	return false
}
