package survey

import (
	"regexp"
	"strings"

	"gosurvey/domain/core"
)

// Registry is an ordered, read-only collection of question definitions.
// Built once at load time; all lookups are pure reads.
type Registry struct {
	questions []Question
	byKey     map[string]int
}

// NewRegistry builds a registry from an ordered question list. Question IDs
// are reassigned to dense ordinals so they stay stable for the dataset's
// lifetime regardless of what the loader put in them.
func NewRegistry(questions []Question) *Registry {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	byKey := make(map[string]int, len(qs))
	for i := range qs {
		qs[i].ID = i
		if qs[i].Key != "" {
			if _, exists := byKey[qs[i].Key]; !exists {
				byKey[qs[i].Key] = i
			}
		}
	}

	return &Registry{questions: qs, byKey: byKey}
}

// Len returns the number of questions
func (r *Registry) Len() int {
	return len(r.questions)
}

// All returns the questions in source column order
func (r *Registry) All() []Question {
	out := make([]Question, len(r.questions))
	copy(out, r.questions)
	return out
}

// Lookup resolves a question by its ordinal id
func (r *Registry) Lookup(id int) (Question, error) {
	if id < 0 || id >= len(r.questions) {
		return Question{}, core.NewQuestionNotFoundError(id)
	}
	return r.questions[id], nil
}

// LookupKey resolves a question by its source column key
func (r *Registry) LookupKey(key string) (Question, error) {
	id, ok := r.byKey[key]
	if !ok {
		return Question{}, core.NewQuestionKeyNotFoundError(key)
	}
	return r.questions[id], nil
}

// Search returns questions whose label or key contains term, case-insensitively.
// The term is interpreted as a regular expression when it compiles; a malformed
// pattern falls back to literal substring matching instead of failing.
func (r *Registry) Search(term string) []Question {
	matcher := newTermMatcher(term)

	var results []Question
	for _, q := range r.questions {
		if matcher(q.Label) || matcher(q.Key) {
			results = append(results, q)
		}
	}
	return results
}

// newTermMatcher builds a case-insensitive match predicate for a search term.
// Raw substring semantics are the contract; regex is an internal convenience.
func newTermMatcher(term string) func(string) bool {
	lower := strings.ToLower(term)

	re, err := regexp.Compile(lower)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(lower))
	}

	return func(s string) bool {
		return re.MatchString(strings.ToLower(s))
	}
}
