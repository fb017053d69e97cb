package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfinder/bookfinder-server/internal/logger"
)

func waitStale(t *testing.T, w *CorpusWatcher) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if w.Stale() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never flagged stale")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCorpusWatcher_FlagsStaleOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.False(t, w.Stale())

	path := filepath.Join(dir, "goodreads_books_mystery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"book_id":"1"}`+"\n"), 0o644))

	waitStale(t, w)
}

func TestCorpusWatcher_IgnoresNonCorpusFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp_upload"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.False(t, w.Stale())
}

func TestCorpusWatcher_MarkFreshClearsLatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	path := filepath.Join(dir, "goodreads_interactions_poetry.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	waitStale(t, w)

	w.MarkFresh()
	assert.False(t, w.Stale())
}

func TestCorpusWatcher_LoadMarkerClearsLatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	path := filepath.Join(dir, "goodreads_books_romance.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	waitStale(t, w)

	// the loader rewrites the marker at the end of a successful run
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarkerFile), []byte("load-abc\n"), 0o644))

	deadline := time.After(2 * time.Second)
	for w.Stale() {
		select {
		case <-deadline:
			t.Fatal("marker write never cleared staleness")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCorpusWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), logger.Discard())
	require.Error(t, err)
}

func TestIsCorpusFile(t *testing.T) {
	assert.True(t, isCorpusFile("/data/goodreads_books_history_biography.json"))
	assert.False(t, isCorpusFile("/data/.goodreads_books.json.swp"))
	assert.False(t, isCorpusFile("/data/readme.md"))
}
