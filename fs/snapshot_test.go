package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/krpcdocs"
	"github.com/fwojciec/krpcdocs/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Snapshot Cache
// Snapshots round-trip through the cache directory; anything short of a
// complete, verified cache reads back as "not found".

func testSnapshot() *krpcdocs.Snapshot {
	return &krpcdocs.Snapshot{
		Pages: map[string]*krpcdocs.Page{
			"python/api/space-center.html": {
				URL:   "https://krpc.github.io/krpc/python/api/space-center.html",
				Slug:  "python/api/space-center.html",
				Title: "SpaceCenter",
				Text:  "The SpaceCenter service. A Vessel represents a craft.",
			},
		},
		Members: map[string]*krpcdocs.Member{
			"SpaceCenter.Vessel.flight": {
				ID:        "SpaceCenter.Vessel.flight",
				Title:     "SpaceCenter",
				URL:       "https://krpc.github.io/krpc/python/api/space-center.html#SpaceCenter.Vessel.flight",
				Signature: "flight ( reference_frame )",
			},
		},
		IndexedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotStore_SaveThenLoadRoundTrips(t *testing.T) {
	t.Parallel()

	// Given a saved snapshot
	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)
	require.NoError(t, store.Save(context.Background(), testSnapshot()))

	// When I load it back
	got, err := store.Load(context.Background())

	// Then every field survives
	require.NoError(t, err)
	require.Contains(t, got.Pages, "python/api/space-center.html")
	assert.Equal(t, "SpaceCenter", got.Pages["python/api/space-center.html"].Title)
	require.Contains(t, got.Members, "SpaceCenter.Vessel.flight")
	assert.Equal(t, "flight ( reference_frame )", got.Members["SpaceCenter.Vessel.flight"].Signature)
	assert.True(t, got.IndexedAt.Equal(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)))
}

func TestSnapshotStore_LoadMissingDirectoryIsNotFound(t *testing.T) {
	t.Parallel()

	store := fs.NewSnapshotStore(filepath.Join(t.TempDir(), "never-written"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, krpcdocs.ENOTFOUND, krpcdocs.ErrorCode(err))
}

func TestSnapshotStore_LoadCorruptPagesIsNotFound(t *testing.T) {
	t.Parallel()

	// Given a saved snapshot whose pages file was later damaged
	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)
	require.NoError(t, store.Save(context.Background(), testSnapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages.json"), []byte("{truncated"), 0644))

	// When I load
	_, err := store.Load(context.Background())

	// Then the damage reads as a missing cache, never a fatal error
	require.Error(t, err)
	assert.Equal(t, krpcdocs.ENOTFOUND, krpcdocs.ErrorCode(err))
}

func TestSnapshotStore_LoadChecksumMismatchIsNotFound(t *testing.T) {
	t.Parallel()

	// Given a saved snapshot whose pages file was replaced with valid but
	// different JSON
	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)
	require.NoError(t, store.Save(context.Background(), testSnapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages.json"), []byte("{}"), 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, krpcdocs.ENOTFOUND, krpcdocs.ErrorCode(err))
}

func TestSnapshotStore_LoadMissingMetaIsNotFound(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)
	require.NoError(t, store.Save(context.Background(), testSnapshot()))
	require.NoError(t, os.Remove(filepath.Join(dir, "meta.json")))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, krpcdocs.ENOTFOUND, krpcdocs.ErrorCode(err))
}

func TestSnapshotStore_SaveReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	// Given two snapshots saved in sequence
	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)
	require.NoError(t, store.Save(context.Background(), testSnapshot()))

	second := testSnapshot()
	second.Pages["python/tutorials.html"] = &krpcdocs.Page{
		URL:   "https://krpc.github.io/krpc/python/tutorials.html",
		Slug:  "python/tutorials.html",
		Title: "Tutorials",
	}
	second.IndexedAt = second.IndexedAt.Add(time.Hour)
	require.NoError(t, store.Save(context.Background(), second))

	// When I load
	got, err := store.Load(context.Background())

	// Then only the second snapshot is visible
	require.NoError(t, err)
	assert.Len(t, got.Pages, 2)
	assert.True(t, got.IndexedAt.Equal(second.IndexedAt))

	// And no temp directory is left behind
	_, err = os.Stat(dir + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after save")
}

func TestSnapshotStore_SaveEmptySnapshotRoundTrips(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	store := fs.NewSnapshotStore(dir)

	require.NoError(t, store.Save(context.Background(), &krpcdocs.Snapshot{
		IndexedAt: time.Now().UTC(),
	}))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Pages)
	assert.Empty(t, got.Members)
}
