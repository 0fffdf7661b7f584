package survey

import (
	"sort"
	"time"
)

// Record is one respondent's answers, keyed by question id. A missing key
// means the respondent never answered that question; loaders must not store
// empty strings for absent cells.
type Record map[int]string

// ResponseTable is an ordered, read-only collection of respondent records.
// Respondent ids are dense ordinals 0..N-1 matching ingestion row order.
type ResponseTable struct {
	records []Record
}

// NewResponseTable builds a table from records in ingestion order
func NewResponseTable(records []Record) *ResponseTable {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &ResponseTable{records: rs}
}

// Len returns the total respondent count
func (t *ResponseTable) Len() int {
	return len(t.records)
}

// Value returns the raw answer a respondent gave for a question.
// The second return is false when the respondent has no stored answer.
func (t *ResponseTable) Value(respondentID, questionID int) (string, bool) {
	if respondentID < 0 || respondentID >= len(t.records) {
		return "", false
	}
	v, ok := t.records[respondentID][questionID]
	return v, ok
}

// Record returns one respondent's full answer map. Callers must treat the
// returned map as read-only.
func (t *ResponseTable) Record(respondentID int) (Record, bool) {
	if respondentID < 0 || respondentID >= len(t.records) {
		return nil, false
	}
	return t.records[respondentID], true
}

// Options computes the distinct observed option values for a question,
// sorted ascending. Multiple-choice answers are tokenized on delimiters
// before deduplication. Computed on demand so it can never go stale.
func (t *ResponseTable) Options(q Question) []string {
	seen := make(map[string]struct{})

	for _, rec := range t.records {
		raw, ok := rec[q.ID]
		if !ok || IsMissing(raw) {
			continue
		}
		if q.Kind.IsMultiValue() {
			for _, opt := range SplitMultiValue(raw) {
				seen[opt] = struct{}{}
			}
		} else {
			seen[raw] = struct{}{}
		}
	}

	options := make([]string, 0, len(seen))
	for opt := range seen {
		options = append(options, opt)
	}
	sort.Strings(options)
	return options
}

// Dataset is the immutable snapshot handed to all query engines: the question
// registry plus the response table, built once by a loader and read-only
// thereafter. Concurrent queries against one Dataset are safe.
type Dataset struct {
	SnapshotID string // unique per load, for logs and report headers
	Source     string
	LoadedAt   time.Time

	Registry  *Registry
	Responses *ResponseTable
}
