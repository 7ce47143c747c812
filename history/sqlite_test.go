package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, err := s.Save(ctx, Entry{
		Label:        "vegetarian",
		Strategy:     "rotation",
		AverageScore: 85.71428571428571,
		GlobalFlags:  []string{"allergy_risk", "under_protein"},
		Payload:      json.RawMessage(`{"run_id":"x"}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "vegetarian", got.Label)
	assert.Equal(t, "rotation", got.Strategy)
	assert.Equal(t, 85.71428571428571, got.AverageScore)
	assert.Equal(t, []string{"allergy_risk", "under_protein"}, got.GlobalFlags)
	assert.JSONEq(t, `{"run_id":"x"}`, string(got.Payload))
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestGet_NotFound(t *testing.T) {
	_, err := newTestStore(t).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	for i := range 3 {
		_, err := s.Save(ctx, Entry{
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			Label:        "run",
			AverageScore: float64(60 + 10*i),
		})
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 80.0, entries[0].AverageScore, "newest first")
	assert.Equal(t, 70.0, entries[1].AverageScore)
	assert.Empty(t, entries[0].Payload)
	assert.Equal(t, []string{}, entries[0].GlobalFlags)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
