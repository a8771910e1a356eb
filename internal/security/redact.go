package security

import "regexp"

type redaction struct {
	pattern *regexp.Regexp
	label   string
}

var redactions = []redaction{
	{label: "API_KEY", pattern: regexp.MustCompile(`(sk-|api[_-]?key[_-]?)[a-zA-Z0-9]{20,}`)},
	{label: "EMAIL", pattern: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{label: "CREDIT_CARD", pattern: regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
	{label: "SSN", pattern: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{label: "IP_ADDRESS", pattern: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
}

// RedactSensitive replaces API keys, emails, card numbers, SSNs and IP addresses
// with [REDACTED_<KIND>] markers.
func RedactSensitive(text string) string {
	out := text
	for _, r := range redactions {
		out = r.pattern.ReplaceAllString(out, "[REDACTED_"+r.label+"]")
	}
	return out
}
