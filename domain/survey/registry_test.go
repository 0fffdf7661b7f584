package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/domain/core"
)

func testRegistry() *Registry {
	return NewRegistry([]Question{
		{Key: "Role", Label: "What is your role?", Kind: KindSingleChoice},
		{Key: "LanguageHaveWorkedWith", Label: "What LanguageHaveWorkedWith do you use?", Kind: KindMultipleChoice},
		{Key: "YearsCode", Label: "How many years of experience?", Kind: KindNumeric},
	})
}

func TestRegistryLookup(t *testing.T) {
	r := testRegistry()

	q, err := r.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "LanguageHaveWorkedWith", q.Key)
	assert.Equal(t, 1, q.ID)

	_, err = r.Lookup(99)
	assert.True(t, core.IsQuestionNotFound(err))

	_, err = r.Lookup(-1)
	assert.True(t, core.IsQuestionNotFound(err))
}

func TestRegistryLookupKey(t *testing.T) {
	r := testRegistry()

	q, err := r.LookupKey("YearsCode")
	require.NoError(t, err)
	assert.Equal(t, 2, q.ID)

	_, err = r.LookupKey("Nope")
	assert.True(t, core.IsQuestionNotFound(err))
}

func TestRegistrySearch(t *testing.T) {
	r := testRegistry()

	// Case-insensitive substring against label text.
	results := r.Search("language")
	require.Len(t, results, 1)
	assert.Equal(t, "LanguageHaveWorkedWith", results[0].Key)

	// Key text matches too.
	results = r.Search("yearscode")
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].ID)

	// Empty term matches everything.
	assert.Len(t, r.Search(""), 3)

	assert.Empty(t, r.Search("no such thing"))
}

func TestRegistrySearchMalformedPattern(t *testing.T) {
	r := NewRegistry([]Question{
		{Key: "Q0", Label: "Does [this] work?", Kind: KindSingleChoice},
	})

	// "[this" is not a valid regex; it must fall back to literal matching
	// instead of failing.
	results := r.Search("[this")
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].ID)
}

func TestRegistryReassignsDenseIDs(t *testing.T) {
	r := NewRegistry([]Question{
		{ID: 17, Key: "A", Label: "a"},
		{ID: 3, Key: "B", Label: "b"},
	})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, 0, all[0].ID)
	assert.Equal(t, 1, all[1].ID)
}
