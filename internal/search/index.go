// Package search provides keyword lookup over question labels and the
// option values observed in responses. Matching is case-insensitive plain
// substring; an empty term matches everything.
package search

import (
	"strings"
	"sync"

	"gosurvey/domain/survey"
)

// OptionHit is one option-search result
type OptionHit struct {
	QuestionID int    `json:"question_id"`
	Option     string `json:"option"`
}

// Index answers keyword searches against a loaded dataset. Question labels
// are scanned directly; per-question option sets are computed lazily on the
// first option search and cached, never half-written thanks to the lock.
type Index struct {
	ds *survey.Dataset

	mu      sync.RWMutex
	options map[int][]string // question id -> observed options
}

// NewIndex creates an index over a dataset
func NewIndex(ds *survey.Dataset) *Index {
	return &Index{ds: ds}
}

// SearchQuestions returns questions whose label contains term,
// case-insensitively. Special pattern characters in term are harmless:
// the registry falls back to literal matching for malformed patterns.
func (ix *Index) SearchQuestions(term string) []survey.Question {
	return ix.ds.Registry.Search(term)
}

// SearchOptions scans every question's observed option set for term
func (ix *Index) SearchOptions(term string) []OptionHit {
	termLower := strings.ToLower(term)

	var hits []OptionHit
	for _, q := range ix.ds.Registry.All() {
		for _, opt := range ix.questionOptions(q) {
			if strings.Contains(strings.ToLower(opt), termLower) {
				hits = append(hits, OptionHit{QuestionID: q.ID, Option: opt})
			}
		}
	}
	return hits
}

// Options returns the cached observed option values for one question
func (ix *Index) Options(q survey.Question) []string {
	return ix.questionOptions(q)
}

func (ix *Index) questionOptions(q survey.Question) []string {
	ix.mu.RLock()
	opts, ok := ix.options[q.ID]
	ix.mu.RUnlock()
	if ok {
		return opts
	}

	computed := ix.ds.Responses.Options(q)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.options == nil {
		ix.options = make(map[int][]string)
	}
	// Another goroutine may have won the race; either result is identical
	// since the dataset is immutable.
	ix.options[q.ID] = computed
	return computed
}
