package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strenlab/tensile/internal/material"
	"github.com/strenlab/tensile/internal/report"
	"github.com/strenlab/tensile/internal/tensile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(name string, uts float64) *material.Result {
	return &material.Result{
		Name:          name,
		Strain:        []float64{0, 0.01, 0.02},
		Stress:        []float64{0, 100, uts},
		YoungsModulus: 10000,
		Yield:         tensile.YieldPoint{Stress: 100, Strain: 0.01, Index: 1, Found: true},
		UTS:           uts,
		UTSStrain:     0.02,
		UTSIndex:      2,
		Toughness:     2.5,
	}
}

func TestOpen_CreatesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(context.Background(), NewRecord("a.lis", testResult("A", 150))))
	require.NoError(t, s1.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("a.lis", testResult("A", 150))

	id, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, "A", rec.Summary.Name)
	assert.Equal(t, 3, rec.Summary.Samples)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestSaveGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := NewRecord("data/CuNiSi.lis", testResult("CuNiSi", 150))
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "data/CuNiSi.lis", got.Source)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, rec.Summary, got.Summary)
}

func TestSave_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := NewRecord("a.lis", testResult("A", 150))
	require.NoError(t, s.Save(ctx, rec))
	assert.Error(t, s.Save(ctx, rec))
}

func TestSave_FillsIDAndTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Record{Source: "a.lis", Summary: report.Summary{Name: "A"}}))

	records, err := s.List(ctx, "A")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_FilterAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, uts := range []float64{150, 160, 170} {
		rec := NewRecord("a.lis", testResult("A", uts))
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Save(ctx, rec))
	}
	require.NoError(t, s.Save(ctx, NewRecord("b.lis", testResult("B", 300))))

	records, err := s.List(ctx, "A")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 170.0, records[0].Summary.UTS)
	assert.Equal(t, 150.0, records[2].Summary.UTS)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.List(ctx, "C")
	require.NoError(t, err)
	assert.Empty(t, none)
}
