package testutil

import (
	"strings"
	"testing"
)

// StripANSI removes ANSI escape sequences from a string.
// This is useful for testing views that include color codes.
func StripANSI(str string) string {
	var result strings.Builder
	ansi := false

	for _, r := range str {
		switch {
		case r == '\x1b':
			ansi = true
		case ansi:
			if r == 'm' {
				ansi = false
			}
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// NormalizeWhitespace trims every line, collapses runs of spaces and drops blank lines.
func NormalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	normalized := make([]string, 0, len(lines))

	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			normalized = append(normalized, strings.Join(fields, " "))
		}
	}

	return strings.Join(normalized, "\n")
}

// AssertContainsInOrder checks that strings appear in the view in the specified order.
func AssertContainsInOrder(t *testing.T, view string, ordered []string) {
	t.Helper()

	offset := 0
	for _, str := range ordered {
		index := strings.Index(view[offset:], str)
		if index == -1 {
			t.Errorf("Expected to find %q after position %d but it wasn't found.\nView:\n%s", str, offset, view)
			return
		}
		offset += index + len(str)
	}
}

// AssertViewContains checks that a view contains expected strings.
func AssertViewContains(t *testing.T, view string, expected []string) {
	t.Helper()

	for _, exp := range expected {
		if !strings.Contains(view, exp) {
			t.Errorf("Expected view to contain %q but it didn't.\nView:\n%s", exp, view)
		}
	}
}

// AssertViewNotContains checks that a view does not contain unexpected strings.
func AssertViewNotContains(t *testing.T, view string, unexpected []string) {
	t.Helper()

	for _, s := range unexpected {
		if strings.Contains(view, s) {
			t.Errorf("Expected view not to contain %q but it did.\nView:\n%s", s, view)
		}
	}
}
