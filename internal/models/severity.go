package models

import "strings"

// Level is the ordinal used for finding severity and recommendation effort.
type Level string

// Level constants.
const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// RiskLevel is the ordinal risk label derived from a numeric score.
type RiskLevel string

// Risk level constants.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ValidLevels returns all valid levels for validation.
func ValidLevels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh}
}

// IsValid checks if the level is one of the supported values.
func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	default:
		return false
	}
}

// ParseLevel converts free text into a Level. Unrecognized values become Medium.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow
	case "high", "critical":
		return LevelHigh
	default:
		return LevelMedium
	}
}

// IsValid checks if the risk level is one of the supported values.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Rank orders risk levels from Low (0) to High (2).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	default:
		return 2
	}
}
