package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

func numericDataset() *survey.Dataset {
	questions := []survey.Question{
		{Key: "YearsCode", Label: "How many years have you coded?", Kind: survey.KindNumeric},
		{Key: "Role", Label: "What is your role?", Kind: survey.KindSingleChoice},
	}
	records := []survey.Record{
		{0: "2", 1: "Backend"},
		{0: "4"},
		{0: "6"},
		{0: "8"},
		{0: "NA"},
		{0: "ten"}, // unparseable, skipped
	}
	return &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable(records),
	}
}

func TestSummarize(t *testing.T) {
	ds := numericDataset()

	s, err := Summarize(ds, 0)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 0.001)
	assert.InDelta(t, 5.0, s.Median, 0.001)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
}

func TestSummarizeWrongKind(t *testing.T) {
	ds := numericDataset()

	_, err := Summarize(ds, 1)
	assert.True(t, errors.Is(err, core.ErrInvalidQuestionType))
}

func TestSummarizeNoValues(t *testing.T) {
	questions := []survey.Question{
		{Key: "Age", Label: "Age in years", Kind: survey.KindNumeric},
	}
	ds := &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable([]survey.Record{{0: "NA"}, {}}),
	}

	s, err := Summarize(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)
}

func TestSummarizeUnknownQuestion(t *testing.T) {
	_, err := Summarize(numericDataset(), 9)
	assert.True(t, core.IsQuestionNotFound(err))
}
