package models

import "strings"

// Answer is a user's response to a single question. Raw values are kept verbatim;
// Normalize maps them onto the Yes/No/Unknown domain.
type Answer string

// Answer constants.
const (
	AnswerYes     Answer = "Yes"
	AnswerNo      Answer = "No"
	AnswerUnknown Answer = "Unknown"
)

// AnswerChoices lists the answers offered to the user, in display order.
func AnswerChoices() []Answer {
	return []Answer{AnswerUnknown, AnswerYes, AnswerNo}
}

// Normalize maps yes-like and no-like values onto Yes and No. Everything else,
// including the empty string, is Unknown.
func (a Answer) Normalize() Answer {
	switch strings.ToLower(strings.TrimSpace(string(a))) {
	case "yes", "y", "true", "enabled":
		return AnswerYes
	case "no", "n", "false", "disabled":
		return AnswerNo
	default:
		return AnswerUnknown
	}
}

// Is reports whether a normalizes to want.
func (a Answer) Is(want Answer) bool {
	return a.Normalize() == want
}

// CloneAnswers returns a copy of answers so results never alias caller input.
func CloneAnswers(answers map[string]Answer) map[string]Answer {
	out := make(map[string]Answer, len(answers))
	for k, v := range answers {
		out[k] = v
	}
	return out
}
