package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/fitrec/internal/catalog"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func names(records []catalog.WorkoutRecord) []string {
	out := make([]string, len(records))
	for i, w := range records {
		out[i] = w.Name
	}
	return out
}

// TestFilterSingleTypeStaysInBucket verifies a named type only returns that
// bucket's records, in bucket order.
func TestFilterSingleTypeStaysInBucket(t *testing.T) {
	cat := defaultCatalog(t)

	for _, typ := range cat.Types() {
		got, err := Filter(cat, typ, "")
		require.NoError(t, err)

		bucket, _ := cat.Bucket(typ)
		assert.Equal(t, bucket.Records(), got, typ)
	}
}

// TestFilterAllConcatenatesBuckets verifies "all" is the order-preserving
// concatenation of every bucket.
func TestFilterAllConcatenatesBuckets(t *testing.T) {
	cat := defaultCatalog(t)

	var want []catalog.WorkoutRecord
	for _, typ := range cat.Types() {
		b, _ := cat.Bucket(typ)
		want = append(want, b.Records()...)
	}

	got, err := Filter(cat, TypeAll, DifficultyAll)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	legacy, err := Filter(cat, "semua", "")
	require.NoError(t, err)
	assert.Equal(t, want, legacy)
}

// TestFilterDifficulty verifies every returned record carries the mapped
// label and that filtering twice changes nothing.
func TestFilterDifficulty(t *testing.T) {
	cat := defaultCatalog(t)

	for level, label := range map[string]catalog.Difficulty{
		"beginner":     catalog.Easy,
		"intermediate": catalog.Medium,
		"advanced":     catalog.Hard,
	} {
		t.Run(level, func(t *testing.T) {
			got, err := Filter(cat, TypeAll, level)
			require.NoError(t, err)
			require.NotEmpty(t, got)
			for _, w := range got {
				assert.Equal(t, label, w.Kesulitan, w.Name)
			}

			filteredCat := catalogOf(t, got)
			again, err := Filter(filteredCat, TypeAll, level)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestFilterBeginnerStrength(t *testing.T) {
	cat := defaultCatalog(t)

	got, err := Filter(cat, "strength", "beginner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assisted push up", "Wall Push-up", "Assisted Squats", "Wall Sit", "Crunch"}, names(got))
}

// TestFilterUnknownDifficultyPassesThrough pins current behaviour: an
// unrecognized difficulty level disables filtering instead of failing. This
// may not be what callers expect.
func TestFilterUnknownDifficultyPassesThrough(t *testing.T) {
	cat := defaultCatalog(t)

	all, err := Filter(cat, "endurance", "")
	require.NoError(t, err)

	for _, level := range []string{"expert", "Easy", "BEGINNER", "very_hard"} {
		got, err := Filter(cat, "endurance", level)
		require.NoError(t, err)
		assert.Equal(t, all, got, level)
	}
}

func TestFilterInvalidType(t *testing.T) {
	cat := defaultCatalog(t)

	for _, typ := range []string{"", "  ", "nonexistent-type", "Strength"} {
		_, err := Filter(cat, typ, "")
		assert.ErrorIs(t, err, ErrInvalidInput, typ)
	}
}

// TestFilterEmptyResultIsNotNil verifies an empty match still encodes as [].
func TestFilterEmptyResultIsNotNil(t *testing.T) {
	cat := catalogOf(t, []catalog.WorkoutRecord{
		{Name: "Plank", Jenis: "strength", Kesulitan: catalog.Medium},
	})

	got, err := Filter(cat, TypeAll, "advanced")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterDeterministic(t *testing.T) {
	cat := defaultCatalog(t)

	first, err := Filter(cat, TypeAll, "intermediate")
	require.NoError(t, err)
	for range 10 {
		again, err := Filter(cat, TypeAll, "intermediate")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTypes(t *testing.T) {
	cat := defaultCatalog(t)

	got := Types(cat)
	require.Len(t, got, 2)
	assert.Equal(t, "strength", got[0].Type)
	assert.Equal(t, []string{"upper_body", "lower_body", "core", "full_body"}, got[0].Subcategories)
	assert.Equal(t, 19, got[0].Count)
	assert.Equal(t, "endurance", got[1].Type)
	assert.Equal(t, 13, got[1].Count)
}

// catalogOf builds a single-bucket catalog from records.
func catalogOf(t *testing.T, records []catalog.WorkoutRecord) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Bucket{{
		Type:          "mixed",
		Subcategories: []catalog.Subcategory{{Name: "all", Workouts: records}},
	}})
	require.NoError(t, err)
	return cat
}
