package analysis

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// NumericSummary holds summary statistics for a numeric question
type NumericSummary struct {
	QuestionID    int     `json:"question_id"`
	QuestionLabel string  `json:"question_label"`
	Count         int     `json:"count"` // values that parsed as numbers
	Mean          float64 `json:"mean"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"std_dev"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Q25           float64 `json:"q25"`
	Q75           float64 `json:"q75"`
}

// Summarize computes summary statistics over a numeric question's answers.
// Missing values and values that do not parse as numbers are skipped.
// Requesting a summary for a non-numeric question fails with
// ErrInvalidQuestionType.
func Summarize(ds *survey.Dataset, questionID int) (*NumericSummary, error) {
	q, err := ds.Registry.Lookup(questionID)
	if err != nil {
		return nil, err
	}
	if q.Kind != survey.KindNumeric {
		return nil, core.ErrInvalidQuestionType
	}

	var values []float64
	for id := 0; id < ds.Responses.Len(); id++ {
		raw, ok := ds.Responses.Value(id, questionID)
		if !ok || survey.IsMissing(raw) {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			values = append(values, v)
		}
	}

	summary := &NumericSummary{
		QuestionID:    questionID,
		QuestionLabel: q.Label,
		Count:         len(values),
	}
	if len(values) == 0 {
		return summary, nil
	}

	data := stats.Float64Data(values)
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	summary.StdDev, _ = stats.StandardDeviation(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Q25, _ = stats.Percentile(data, 25)
	summary.Q75, _ = stats.Percentile(data, 75)

	return summary, nil
}
