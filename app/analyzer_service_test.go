package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/app"
	"gosurvey/domain/core"
	"gosurvey/domain/survey"
	"gosurvey/internal/testkit"
)

func TestAnalyzerServiceQueries(t *testing.T) {
	service := app.NewAnalyzerService(testkit.FixedDataset())

	questions := service.ListQuestions()
	require.Len(t, questions, 2)

	results := service.SearchQuestions("languages")
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)

	hits := service.SearchOptions("rust")
	require.Len(t, hits, 1)
	assert.Equal(t, "Rust", hits[0].Option)

	options, err := service.QuestionOptions(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Java", "JavaScript", "Python", "Rust"}, options)

	subset, err := service.CreateSubset(1, "Python")
	require.NoError(t, err)
	assert.Equal(t, 3, subset.Size())
}

func TestAnalyzerServiceDistributionMemoized(t *testing.T) {
	service := app.NewAnalyzerService(testkit.FixedDataset())

	first, err := service.GetDistribution(1)
	require.NoError(t, err)
	second, err := service.GetDistribution(1)
	require.NoError(t, err)

	// Results are immutable once computed and shared between callers.
	assert.Same(t, first, second)
	assert.Equal(t, 3, first.TotalResponses)
}

func TestAnalyzerServiceDistributionConcurrent(t *testing.T) {
	service := app.NewAnalyzerService(testkit.NewTestKit().Dataset())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			dist, err := service.GetDistribution(q % 5)
			assert.NoError(t, err)
			assert.NotNil(t, dist)
		}(i)
	}
	wg.Wait()
}

func TestAnalyzerServiceUnknownQuestion(t *testing.T) {
	service := app.NewAnalyzerService(testkit.FixedDataset())

	_, err := service.GetDistribution(99)
	assert.True(t, core.IsQuestionNotFound(err))

	_, err = service.CreateSubset(99, "x")
	assert.True(t, core.IsQuestionNotFound(err))

	_, err = service.QuestionOptions(99)
	assert.True(t, core.IsQuestionNotFound(err))
}

func TestAnalyzerServiceIntersect(t *testing.T) {
	service := app.NewAnalyzerService(testkit.FixedDataset())

	pythonUsers, err := service.CreateSubset(1, "Python")
	require.NoError(t, err)
	young, err := service.CreateSubset(0, "25-34")
	require.NoError(t, err)

	both := service.Intersect(pythonUsers, young)
	assert.Equal(t, []int{0, 2}, both)
}

type failingLoader struct{}

func (failingLoader) Load(ctx context.Context, source string) (*survey.Dataset, error) {
	return nil, core.NewLoadError(source, context.DeadlineExceeded)
}

func TestLoadAnalyzerPropagatesLoaderError(t *testing.T) {
	_, err := app.LoadAnalyzer(context.Background(), failingLoader{}, "somewhere.xlsx")
	assert.ErrorIs(t, err, core.ErrLoadFailed)
}
