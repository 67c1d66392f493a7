package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	base := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	for i, file := range []string{"Logger.hpp", "Logger.cpp", "Config.hpp"} {
		_, err := s.Record(ctx, Entry{
			Path:      "/work/" + file,
			Language:  "C++",
			Filetype:  "singleton03",
			Name:      "Logger",
			Template:  "Cpp/" + file,
			Status:    "created",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/work/Config.hpp", all[0].Path, "newest first")
	assert.Equal(t, "/work/Logger.hpp", all[2].Path)
	assert.True(t, base.Equal(all[2].CreatedAt))

	two, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestRecordFillsDefaults(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	s.now = func() time.Time { return fixed }

	e, err := s.Record(ctx, Entry{Path: "a", Status: "overwritten"})
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.True(t, fixed.Equal(e.CreatedAt))

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, "overwritten", got[0].Status)
}

func TestDuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Record(ctx, Entry{ID: "same", Path: "a"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{ID: "same", Path: "b"})
	assert.Error(t, err)
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{Path: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.Equal(t, path, s.Path())

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
