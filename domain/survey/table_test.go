package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseTableValue(t *testing.T) {
	table := NewResponseTable([]Record{
		{0: "25-34", 1: "Python;Go"},
		{0: "NA"},
	})

	v, ok := table.Value(0, 1)
	require.True(t, ok)
	assert.Equal(t, "Python;Go", v)

	// Absent answer: key not stored.
	_, ok = table.Value(1, 1)
	assert.False(t, ok)

	// Out-of-range respondent ids are not an error, just absent.
	_, ok = table.Value(5, 0)
	assert.False(t, ok)
	_, ok = table.Value(-1, 0)
	assert.False(t, ok)
}

func TestResponseTableOptions(t *testing.T) {
	table := NewResponseTable([]Record{
		{0: "25-34", 1: "Python;JavaScript;Rust"},
		{0: "35-44", 1: "Java;Python"},
		{0: "25-34", 1: "Python;Go"},
		{0: "NA", 1: ""},
	})

	single := Question{ID: 0, Kind: KindSingleChoice}
	multi := Question{ID: 1, Kind: KindMultipleChoice}

	// Single-value: whole values, deduped, "NA" filtered, sorted.
	assert.Equal(t, []string{"25-34", "35-44"}, table.Options(single))

	// Multi-value: tokenized before dedup.
	assert.Equal(t, []string{"Go", "Java", "JavaScript", "Python", "Rust"}, table.Options(multi))
}
