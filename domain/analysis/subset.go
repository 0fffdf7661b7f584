package analysis

import (
	"strings"

	"gosurvey/domain/survey"
)

// MatchMode controls how a multiple-choice answer is matched against the
// target option when building a subset.
type MatchMode string

const (
	// MatchContains treats the target as a plain substring of the raw answer.
	// This is the historical behavior: "Java" also matches respondents who
	// selected "JavaScript". Kept as the default pending product sign-off on
	// switching; use MatchToken for delimiter-aware membership.
	MatchContains MatchMode = "contains"
	// MatchToken tokenizes the raw answer on delimiters and requires an
	// exact element match.
	MatchToken MatchMode = "token"
)

// Subset is the set of respondent ids whose answer to one question matched a
// target option, plus the parent dataset's total respondent count for
// percentage-of-whole calculations. Ids are unique and in ascending
// (ingestion) order.
type Subset struct {
	QuestionID       int       `json:"question_id"`
	Option           string    `json:"option"`
	RespondentIDs    []int     `json:"respondent_ids"`
	TotalRespondents int       `json:"total_respondents"`
	Mode             MatchMode `json:"mode"`
}

// CreateSubset builds a subset with the default containment matching.
//
// Multiple-choice answers match when the raw string contains option as a
// substring. All other kinds require exact string equality. Blank and "NA"
// values need no special filtering here: they will not equal or contain a
// realistic option argument.
func CreateSubset(ds *survey.Dataset, questionID int, option string) (*Subset, error) {
	return CreateSubsetMode(ds, questionID, option, MatchContains)
}

// CreateSubsetMode builds a subset with an explicit multiple-choice match mode
func CreateSubsetMode(ds *survey.Dataset, questionID int, option string, mode MatchMode) (*Subset, error) {
	q, err := ds.Registry.Lookup(questionID)
	if err != nil {
		return nil, err
	}

	var ids []int
	for id := 0; id < ds.Responses.Len(); id++ {
		raw, ok := ds.Responses.Value(id, questionID)
		if !ok {
			continue
		}
		if matches(q.Kind, raw, option, mode) {
			ids = append(ids, id)
		}
	}

	return &Subset{
		QuestionID:       questionID,
		Option:           option,
		RespondentIDs:    ids,
		TotalRespondents: ds.Responses.Len(),
		Mode:             mode,
	}, nil
}

func matches(kind survey.Kind, raw, option string, mode MatchMode) bool {
	if !kind.IsMultiValue() {
		return raw == option
	}

	switch mode {
	case MatchToken:
		for _, tok := range survey.SplitMultiValue(raw) {
			if tok == option {
				return true
			}
		}
		return false
	default:
		return strings.Contains(raw, option)
	}
}

// Size returns the number of respondents in the subset
func (s *Subset) Size() int {
	return len(s.RespondentIDs)
}

// Percentage returns the subset size as a share of the parent dataset,
// 0.0 when the dataset had no respondents.
func (s *Subset) Percentage() float64 {
	return percentage(s.Size(), s.TotalRespondents)
}

// ContainsRespondent reports subset membership for one respondent id
func (s *Subset) ContainsRespondent(respondentID int) bool {
	for _, id := range s.RespondentIDs {
		if id == respondentID {
			return true
		}
	}
	return false
}

// Intersect returns the respondent ids present in both subsets, following
// the receiver's order, duplicates collapsed. Neither input is mutated, and
// the two subsets may reference the same or different questions. As a set
// the result is commutative.
func (s *Subset) Intersect(other *Subset) []int {
	inOther := make(map[int]struct{}, len(other.RespondentIDs))
	for _, id := range other.RespondentIDs {
		inOther[id] = struct{}{}
	}

	var result []int
	seen := make(map[int]struct{})
	for _, id := range s.RespondentIDs {
		if _, ok := inOther[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
