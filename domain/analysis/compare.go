package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// DistributionWithin computes a question's frequency table restricted to the
// members of a subset, for comparing answer patterns across respondent
// groups. Percentages are relative to the valid responses inside the group.
func DistributionWithin(ds *survey.Dataset, questionID int, group *Subset) (*DistributionResult, error) {
	q, err := ds.Registry.Lookup(questionID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	totalResponses := 0

	for _, id := range group.RespondentIDs {
		raw, ok := ds.Responses.Value(id, questionID)
		if !ok || survey.IsMissing(raw) {
			continue
		}
		if q.Kind.IsMultiValue() {
			for _, opt := range survey.SplitMultiValue(raw) {
				counts[opt]++
			}
		} else {
			counts[raw]++
		}
		totalResponses++
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

// IndependenceResult holds a chi-square test of independence between two
// single-value questions.
type IndependenceResult struct {
	QuestionA int     `json:"question_a"`
	QuestionB int     `json:"question_b"`
	ChiSquare float64 `json:"chi_square"`
	DF        int     `json:"df"`
	PValue    float64 `json:"p_value"`
	CramersV  float64 `json:"cramers_v"` // effect size, 0..1
	N         int     `json:"n"`         // respondents answering both
}

// TestIndependence runs a chi-square test of independence over the
// contingency table of two single-value questions. Multiple-choice questions
// have no single cell per respondent and are rejected with
// ErrInvalidQuestionType.
func TestIndependence(ds *survey.Dataset, questionA, questionB int) (*IndependenceResult, error) {
	qa, err := ds.Registry.Lookup(questionA)
	if err != nil {
		return nil, err
	}
	qb, err := ds.Registry.Lookup(questionB)
	if err != nil {
		return nil, err
	}
	if qa.Kind.IsMultiValue() || qb.Kind.IsMultiValue() {
		return nil, core.ErrInvalidQuestionType
	}

	// Build the contingency table over respondents who answered both.
	table := make(map[string]map[string]int)
	colSet := make(map[string]struct{})
	n := 0
	for id := 0; id < ds.Responses.Len(); id++ {
		a, okA := ds.Responses.Value(id, questionA)
		b, okB := ds.Responses.Value(id, questionB)
		if !okA || !okB || survey.IsMissing(a) || survey.IsMissing(b) {
			continue
		}
		if table[a] == nil {
			table[a] = make(map[string]int)
		}
		table[a][b]++
		colSet[b] = struct{}{}
		n++
	}

	rows := len(table)
	cols := len(colSet)
	result := &IndependenceResult{
		QuestionA: questionA,
		QuestionB: questionB,
		PValue:    1.0,
		N:         n,
	}
	if rows < 2 || cols < 2 || n == 0 {
		return result, nil
	}

	rowTotals := make(map[string]int, rows)
	colTotals := make(map[string]int, cols)
	for a, row := range table {
		for b, count := range row {
			rowTotals[a] += count
			colTotals[b] += count
		}
	}

	chiSq := 0.0
	for a, row := range table {
		for b := range colSet {
			expected := float64(rowTotals[a]) * float64(colTotals[b]) / float64(n)
			if expected == 0 {
				continue
			}
			observed := float64(row[b])
			diff := observed - expected
			chiSq += diff * diff / expected
		}
	}

	df := (rows - 1) * (cols - 1)
	dist := distuv.ChiSquared{K: float64(df)}

	result.ChiSquare = chiSq
	result.DF = df
	result.PValue = 1 - dist.CDF(chiSq)

	minDim := rows - 1
	if cols-1 < minDim {
		minDim = cols - 1
	}
	if minDim > 0 {
		result.CramersV = math.Sqrt(chiSq / (float64(n) * float64(minDim)))
	}

	return result, nil
}
