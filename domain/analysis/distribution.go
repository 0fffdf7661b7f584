package analysis

import (
	"sort"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// OptionCount is one row of a frequency table
type OptionCount struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DistributionResult is the answer frequency table for one question.
//
// For single-value kinds the counts sum to TotalResponses. For multiple
// choice each respondent may contribute several option counts, so the sum
// can exceed TotalResponses and percentages do not add up to 100% - they
// are always relative to TotalResponses, never to the option-count sum.
type DistributionResult struct {
	QuestionID     int                    `json:"question_id"`
	QuestionLabel  string                 `json:"question_label"`
	Kind           survey.Kind            `json:"kind"`
	Counts         map[string]OptionCount `json:"counts"`
	TotalResponses int                    `json:"total_responses"`
}

// Distribution computes the answer frequency table for a question.
//
// Absent, blank and "NA" values are filtered out before counting; the
// surviving respondents define TotalResponses. Multiple-choice answers are
// tokenized on semicolons (commas as fallback), and each respondent
// increments TotalResponses exactly once no matter how many options they
// selected.
func Distribution(ds *survey.Dataset, questionID int) (*DistributionResult, error) {
	q, err := ds.Registry.Lookup(questionID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	totalResponses := 0

	switch q.Kind {
	case survey.KindSingleChoice, survey.KindText, survey.KindNumeric:
		for id := 0; id < ds.Responses.Len(); id++ {
			raw, ok := ds.Responses.Value(id, questionID)
			if !ok || survey.IsMissing(raw) {
				continue
			}
			counts[raw]++
			totalResponses++
		}
	case survey.KindMultipleChoice:
		for id := 0; id < ds.Responses.Len(); id++ {
			raw, ok := ds.Responses.Value(id, questionID)
			if !ok || survey.IsMissing(raw) {
				continue
			}
			for _, opt := range survey.SplitMultiValue(raw) {
				counts[opt]++
			}
			totalResponses++
		}
	default:
		// Guard for kinds added later without frequency semantics.
		return nil, core.ErrInvalidQuestionType
	}

	result := &DistributionResult{
		QuestionID:     questionID,
		QuestionLabel:  q.Label,
		Kind:           q.Kind,
		Counts:         make(map[string]OptionCount, len(counts)),
		TotalResponses: totalResponses,
	}
	for opt, count := range counts {
		result.Counts[opt] = OptionCount{
			Option:     opt,
			Count:      count,
			Percentage: percentage(count, totalResponses),
		}
	}

	return result, nil
}

// percentage degrades to 0.0 on an empty denominator instead of faulting
func percentage(count, total int) float64 {
	if total <= 0 {
		return 0.0
	}
	return float64(count) / float64(total) * 100.0
}

// SortedEntries returns the frequency table in presentation order:
// descending by count, ties broken by option string ascending so output
// is reproducible.
func (d *DistributionResult) SortedEntries() []OptionCount {
	entries := make([]OptionCount, 0, len(d.Counts))
	for _, oc := range d.Counts {
		entries = append(entries, oc)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Option < entries[j].Option
	})
	return entries
}

// MostPopular returns the highest-count option. The second return is false
// for an empty distribution.
func (d *DistributionResult) MostPopular() (OptionCount, bool) {
	entries := d.SortedEntries()
	if len(entries) == 0 {
		return OptionCount{}, false
	}
	return entries[0], true
}

// AboveThreshold returns options at or above the given percentage, in
// presentation order. The boundary is inclusive: exactly threshold qualifies.
func (d *DistributionResult) AboveThreshold(threshold float64) []OptionCount {
	var out []OptionCount
	for _, oc := range d.SortedEntries() {
		if oc.Percentage >= threshold {
			out = append(out, oc)
		}
	}
	return out
}
