package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/domain/core"
	"gosurvey/domain/survey"
)

// testDataset mirrors a tiny developer survey: one single-choice age bracket
// question and one multi-select language question.
func testDataset() *survey.Dataset {
	questions := []survey.Question{
		{Key: "Q1", Label: "What is your age bracket?", Kind: survey.KindSingleChoice},
		{Key: "Q2", Label: "What languages do you use?", Kind: survey.KindMultipleChoice},
	}
	records := []survey.Record{
		{0: "25-34", 1: "Python;JavaScript;Rust"},
		{0: "35-44", 1: "Java;Python"},
		{0: "25-34", 1: "Python;Go"},
	}
	return &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable(records),
	}
}

func TestDistributionSingleChoice(t *testing.T) {
	ds := testDataset()

	dist, err := Distribution(ds, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, dist.TotalResponses)
	assert.Equal(t, 2, dist.Counts["25-34"].Count)
	assert.Equal(t, 1, dist.Counts["35-44"].Count)

	// Single-choice counts always sum to the valid-response total.
	sum := 0
	for _, oc := range dist.Counts {
		sum += oc.Count
	}
	assert.Equal(t, dist.TotalResponses, sum)

	assert.InDelta(t, 66.666, dist.Counts["25-34"].Percentage, 0.01)
}

func TestDistributionMultipleChoice(t *testing.T) {
	ds := testDataset()

	dist, err := Distribution(ds, 1)
	require.NoError(t, err)

	// Each respondent answered once but contributed several option counts.
	assert.Equal(t, 3, dist.TotalResponses)
	assert.Equal(t, 3, dist.Counts["Python"].Count)
	assert.Equal(t, 1, dist.Counts["Rust"].Count)

	sum := 0
	for _, oc := range dist.Counts {
		sum += oc.Count
	}
	assert.GreaterOrEqual(t, sum, dist.TotalResponses)

	// Percentages are relative to respondents, not selections, so they do
	// not sum to 100% here.
	assert.InDelta(t, 100.0, dist.Counts["Python"].Percentage, 0.001)
}

func TestDistributionFiltersMissing(t *testing.T) {
	questions := []survey.Question{
		{Key: "Q1", Label: "Pick one", Kind: survey.KindSingleChoice},
	}
	records := []survey.Record{
		{0: "Yes"},
		{0: "NA"},
		{0: "   "},
		{}, // never answered
		{0: "No"},
	}
	ds := &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable(records),
	}

	dist, err := Distribution(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, dist.TotalResponses)
	assert.Len(t, dist.Counts, 2)
}

func TestDistributionZeroResponses(t *testing.T) {
	questions := []survey.Question{
		{Key: "Q1", Label: "Nobody answered", Kind: survey.KindSingleChoice},
	}
	ds := &survey.Dataset{
		Registry:  survey.NewRegistry(questions),
		Responses: survey.NewResponseTable([]survey.Record{{}, {}}),
	}

	dist, err := Distribution(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, dist.TotalResponses)
	assert.Empty(t, dist.Counts)

	// No divide-by-zero anywhere downstream either.
	_, ok := dist.MostPopular()
	assert.False(t, ok)
	assert.Empty(t, dist.AboveThreshold(0))
}

func TestDistributionUnknownQuestion(t *testing.T) {
	ds := testDataset()

	_, err := Distribution(ds, 42)
	assert.True(t, core.IsQuestionNotFound(err))
}

func fixedDistribution() *DistributionResult {
	return &DistributionResult{
		QuestionID:    1,
		QuestionLabel: "Favorite programming language",
		Kind:          survey.KindSingleChoice,
		Counts: map[string]OptionCount{
			"Rust":       {Option: "Rust", Count: 150, Percentage: 30.0},
			"Python":     {Option: "Python", Count: 250, Percentage: 50.0},
			"JavaScript": {Option: "JavaScript", Count: 100, Percentage: 20.0},
		},
		TotalResponses: 500,
	}
}

func TestMostPopular(t *testing.T) {
	top, ok := fixedDistribution().MostPopular()
	require.True(t, ok)
	assert.Equal(t, "Python", top.Option)
	assert.Equal(t, 250, top.Count)
	assert.Equal(t, 50.0, top.Percentage)
}

func TestAboveThreshold(t *testing.T) {
	// Inclusive boundary: Rust sits at exactly 30.0 and qualifies.
	above := fixedDistribution().AboveThreshold(30.0)
	require.Len(t, above, 2)
	assert.Equal(t, "Python", above[0].Option)
	assert.Equal(t, "Rust", above[1].Option)
}

func TestSortedEntriesDeterministicTies(t *testing.T) {
	dist := &DistributionResult{
		Counts: map[string]OptionCount{
			"b": {Option: "b", Count: 5},
			"a": {Option: "a", Count: 5},
			"c": {Option: "c", Count: 9},
		},
	}

	entries := dist.SortedEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].Option)
	// Equal counts break ties by option string ascending.
	assert.Equal(t, "a", entries[1].Option)
	assert.Equal(t, "b", entries[2].Option)
}
