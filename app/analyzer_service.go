package app

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"gosurvey/domain/analysis"
	"gosurvey/domain/survey"
	"gosurvey/internal"
	"gosurvey/internal/search"
	"gosurvey/ports"
)

// AnalyzerService is the facade the presentation layers talk to. It owns one
// immutable dataset snapshot and exposes the typed query operations over it.
// All methods are safe for concurrent use.
type AnalyzerService struct {
	ds     *survey.Dataset
	index  *search.Index
	logger *internal.Logger

	// Distribution results are pure functions of the immutable snapshot, so
	// they are memoized once computed. singleflight collapses concurrent
	// computations of the same question; the map is guarded so entries are
	// never observed half-written.
	mu        sync.RWMutex
	distCache map[int]*analysis.DistributionResult
	flight    singleflight.Group
}

// NewAnalyzerService creates a service over a loaded dataset
func NewAnalyzerService(ds *survey.Dataset) *AnalyzerService {
	return &AnalyzerService{
		ds:        ds,
		index:     search.NewIndex(ds),
		logger:    internal.DefaultLogger,
		distCache: make(map[int]*analysis.DistributionResult),
	}
}

// LoadAnalyzer loads a dataset through the given loader and wraps it in a
// service. This is the single blocking acquisition in the system.
func LoadAnalyzer(ctx context.Context, loader ports.DatasetLoader, source string) (*AnalyzerService, error) {
	ds, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewAnalyzerService(ds), nil
}

// Dataset returns the underlying immutable snapshot
func (s *AnalyzerService) Dataset() *survey.Dataset {
	return s.ds
}

// ListQuestions returns all questions in source column order
func (s *AnalyzerService) ListQuestions() []survey.Question {
	return s.ds.Registry.All()
}

// SearchQuestions finds questions whose label contains term, case-insensitively
func (s *AnalyzerService) SearchQuestions(term string) []survey.Question {
	return s.index.SearchQuestions(term)
}

// SearchOptions finds observed option values containing term
func (s *AnalyzerService) SearchOptions(term string) []search.OptionHit {
	return s.index.SearchOptions(term)
}

// QuestionOptions returns the distinct observed options for a question, sorted
func (s *AnalyzerService) QuestionOptions(questionID int) ([]string, error) {
	q, err := s.ds.Registry.Lookup(questionID)
	if err != nil {
		return nil, err
	}
	return s.index.Options(q), nil
}

// GetDistribution returns the answer frequency table for a question, memoized
func (s *AnalyzerService) GetDistribution(questionID int) (*analysis.DistributionResult, error) {
	s.mu.RLock()
	cached, ok := s.distCache[questionID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := s.flight.Do(strconv.Itoa(questionID), func() (interface{}, error) {
		dist, err := analysis.Distribution(s.ds, questionID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.distCache[questionID] = dist
		s.mu.Unlock()
		s.logger.Debug("distribution computed for question %d (%d options, %d responses)",
			questionID, len(dist.Counts), dist.TotalResponses)
		return dist, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*analysis.DistributionResult), nil
}

// CreateSubset builds the respondent subset matching a question/option pair
// using the default containment matching
func (s *AnalyzerService) CreateSubset(questionID int, option string) (*analysis.Subset, error) {
	return analysis.CreateSubset(s.ds, questionID, option)
}

// CreateSubsetMode builds a subset with an explicit multiple-choice match mode
func (s *AnalyzerService) CreateSubsetMode(questionID int, option string, mode analysis.MatchMode) (*analysis.Subset, error) {
	return analysis.CreateSubsetMode(s.ds, questionID, option, mode)
}

// Intersect returns the respondent ids present in both subsets
func (s *AnalyzerService) Intersect(a, b *analysis.Subset) []int {
	return a.Intersect(b)
}

// DistributionWithin computes a question's distribution restricted to a group
func (s *AnalyzerService) DistributionWithin(questionID int, group *analysis.Subset) (*analysis.DistributionResult, error) {
	return analysis.DistributionWithin(s.ds, questionID, group)
}

// TestIndependence runs a chi-square independence test between two questions
func (s *AnalyzerService) TestIndependence(questionA, questionB int) (*analysis.IndependenceResult, error) {
	return analysis.TestIndependence(s.ds, questionA, questionB)
}

// NumericSummary computes summary statistics for a numeric question
func (s *AnalyzerService) NumericSummary(questionID int) (*analysis.NumericSummary, error) {
	return analysis.Summarize(s.ds, questionID)
}
