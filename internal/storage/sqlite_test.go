package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/fitrec/internal/catalog"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	want, err := catalog.Default()
	require.NoError(t, err)

	n, err := s.ReplaceCatalog(ctx, want)
	require.NoError(t, err)
	assert.EqualValues(t, want.Len(), n)

	got, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Buckets(), got.Buckets())
	assert.Equal(t, want.Records(), got.Records())
}

func TestSQLiteReplaceOverwrites(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	def, err := catalog.Default()
	require.NoError(t, err)
	_, err = s.ReplaceCatalog(ctx, def)
	require.NoError(t, err)

	small, err := catalog.New([]catalog.Bucket{{
		Type: "strength",
		Subcategories: []catalog.Subcategory{{Name: "core", Workouts: []catalog.WorkoutRecord{
			{Name: "Plank", Jenis: "strength", Target: "Core", Kesulitan: catalog.Medium, Description: "Hold."},
		}}},
	}})
	require.NoError(t, err)
	_, err = s.ReplaceCatalog(ctx, small)
	require.NoError(t, err)

	got, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, []string{"strength"}, got.Types())
}

func TestSQLiteEmpty(t *testing.T) {
	s := openTestSQLite(t)

	_, err := s.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestInsertCatalogQuery(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	rows := cat.Rows()[:2]

	query, args := insertCatalogQuery(rows)
	assert.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11),($12,")
	assert.Len(t, args, 22)
	assert.Equal(t, "Push-up", args[5])
	assert.Equal(t, "Medium", args[9])
}
