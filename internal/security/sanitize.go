// Package security validates free-text input and scrubs sensitive values before logging.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/aishield/internal/apperrors"
)

// MaxInputLength bounds any single free-text field.
const MaxInputLength = 100000

var (
	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
	}

	apiKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
)

// SanitizeInput validates and cleans free text. Input longer than maxLength runes or
// containing control characters other than tab and newlines is rejected, never
// truncated. Script tags, javascript: URLs and inline event handlers are stripped.
func SanitizeInput(text string, maxLength int) (string, error) {
	if text == "" {
		return "", nil
	}
	if maxLength <= 0 {
		maxLength = MaxInputLength
	}

	if !utf8.ValidString(text) {
		return "", apperrors.Validation("sanitize input", "input is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(text); n > maxLength {
		return "", apperrors.Validation("sanitize input", "input exceeds maximum length of %d characters", maxLength)
	}
	for i, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return "", apperrors.Validation("sanitize input", "input contains disallowed control character %U at offset %d", r, i)
		}
	}

	sanitized := text
	for _, p := range dangerousPatterns {
		sanitized = p.ReplaceAllString(sanitized, "")
	}
	return strings.TrimSpace(sanitized), nil
}

// ValidateAPIKey checks that an API key looks well formed.
func ValidateAPIKey(key string) bool {
	if len(key) < 20 || len(key) > 200 {
		return false
	}
	return apiKeyPattern.MatchString(key)
}

// HashSensitive returns the hex SHA-256 of data, for logging identifiers.
func HashSensitive(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 12 hex characters of HashSensitive.
func ShortHash(data string) string {
	return HashSensitive(data)[:12]
}
