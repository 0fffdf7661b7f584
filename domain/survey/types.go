package survey

import (
	"strings"
)

// Kind classifies how a question's answers are encoded and counted
type Kind string

const (
	// KindSingleChoice questions hold exactly one answer value per respondent
	KindSingleChoice Kind = "single_choice"
	// KindMultipleChoice answers are semicolon or comma delimited lists
	KindMultipleChoice Kind = "multiple_choice"
	// KindText answers are free-form text, counted by exact value
	KindText Kind = "text"
	// KindNumeric answers are numeric-flavored free-form values
	KindNumeric Kind = "numeric"
)

// IsMultiValue reports whether answers of this kind split into several options
func (k Kind) IsMultiValue() bool {
	return k == KindMultipleChoice
}

// Question describes one column of the survey
type Question struct {
	ID    int    `json:"id"`    // ordinal position, stable for the dataset lifetime
	Key   string `json:"key"`   // source column key, e.g. "LanguageHaveWorkedWith"
	Label string `json:"label"` // display text
	Kind  Kind   `json:"kind"`
}

// InferKind guesses a question kind from its label text.
//
// This is a best-effort heuristic, evaluated in priority order with first
// match winning. A kind declared by the source schema always takes precedence
// over the inferred one.
func InferKind(label string) Kind {
	lower := strings.ToLower(label)

	switch {
	case strings.Contains(lower, "select all") || strings.Contains(lower, "multiple"):
		return KindMultipleChoice
	case strings.Contains(lower, "age") || strings.Contains(lower, "years") || strings.Contains(lower, "salary"):
		return KindNumeric
	case strings.Contains(lower, "describe") || strings.Contains(lower, "other") || strings.Contains(lower, "comment"):
		return KindText
	default:
		return KindSingleChoice
	}
}

// ParseKind maps source schema type codes to a Kind. Unknown codes default to
// text entry, matching how upstream survey exports behave.
func ParseKind(code string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "SC":
		return KindSingleChoice, true
	case "MC":
		return KindMultipleChoice, true
	case "TE":
		return KindText, true
	case "NUM":
		return KindNumeric, true
	default:
		return KindText, false
	}
}

// MissingSentinel is the literal value survey exports use for absent answers.
const MissingSentinel = "NA"

// IsMissing reports whether a raw cell value counts as "no answer".
// Blank after trimming and the "NA" sentinel are both treated as missing.
func IsMissing(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || trimmed == MissingSentinel
}

// SplitMultiValue tokenizes a multiple-choice raw answer. Semicolon is the
// primary delimiter; comma is the fallback when no semicolon is present.
// Pieces are trimmed and empty pieces dropped.
func SplitMultiValue(raw string) []string {
	var parts []string
	switch {
	case strings.Contains(raw, ";"):
		parts = strings.Split(raw, ";")
	case strings.Contains(raw, ","):
		parts = strings.Split(raw, ",")
	default:
		parts = []string{raw}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
