package nutrition

import (
	"strings"

	"nutridiary/internal/common"
)

// NormalizeGrade maps a raw Nutri-Score grade value from the product feed
// ("a", "B", "unknown", "not-applicable", ...) to a canonical single letter
// A–E. Empty input normalizes to the empty string (grade unknown); anything
// else that does not start with A–E is rejected.
func NormalizeGrade(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", nil
	}
	switch g := s[:1]; g {
	case "A", "B", "C", "D", "E":
		return g, nil
	default:
		return "", common.ErrInvalidGrade
	}
}

// GradeFromScore converts a numeric Nutri-Score points value into the letter
// grade, using the general-foods thresholds.
func GradeFromScore(score int) string {
	switch {
	case score <= -1:
		return "A"
	case score <= 2:
		return "B"
	case score <= 10:
		return "C"
	case score <= 18:
		return "D"
	default:
		return "E"
	}
}
