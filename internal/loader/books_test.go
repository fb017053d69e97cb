package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/corpus"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

func testGenre() config.GenreConfig {
	return config.GenreConfig{
		Key:              "fantasy",
		Name:             "Fantasy",
		BooksFile:        "goodreads_books_fantasy.json",
		InteractionsFile: "goodreads_interactions_fantasy.json",
		ReviewsFile:      "goodreads_reviews_fantasy.json",
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBookLoader_LoadGenre_SelectsMostRated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"Low","ratings_count":"10"}
{"book_id":"2","title":"High","ratings_count":"1000"}
{"book_id":"3","title":"Mid","ratings_count":"100"}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 2, logger.Discard())

	stats, selected, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Books)
	assert.Contains(t, selected, "2")
	assert.Contains(t, selected, "3")
	assert.NotContains(t, selected, "1")
	assert.NotContains(t, store.books, "1")
}

func TestBookLoader_LoadGenre_ShelfFiltering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"B","ratings_count":"50","popular_shelves":[{"name":"to-read","count":"9999"},{"name":"fantasy","count":"40"},{"name":"rare","count":"1"},{"name":"epic","count":"12"}]}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	_, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	require.Len(t, store.shelfLinks, 2)
	assert.Equal(t, "fantasy", store.shelfLinks[0].Name)
	assert.Equal(t, "epic", store.shelfLinks[1].Name)
}

func TestBookLoader_LoadGenre_ShelfCap(t *testing.T) {
	var shelves []string
	for i := 0; i < 30; i++ {
		shelves = append(shelves, fmt.Sprintf(`{"name":"shelf-%d","count":"%d"}`, i, 100-i))
	}
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"B","ratings_count":"50","popular_shelves":[`+strings.Join(shelves, ",")+`]}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	_, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	require.Len(t, store.shelfLinks, maxShelvesPerBook)
	// source order preserved, not re-sorted
	assert.Equal(t, "shelf-0", store.shelfLinks[0].Name)
	assert.Equal(t, "shelf-19", store.shelfLinks[19].Name)
}

func TestBookLoader_LoadGenre_SimilarityClosure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"A","ratings_count":"100","similar_books":["2","999"]}
{"book_id":"2","title":"B","ratings_count":"200","similar_books":["1"]}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	stats, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	// the edge to the unselected book 999 is dropped
	assert.Equal(t, 2, stats.Similarities)
	for _, sim := range store.similarities {
		assert.Contains(t, store.books, sim.ToID)
	}
}

func TestBookLoader_LoadGenre_DescriptionCleaned(t *testing.T) {
	long := strings.Repeat("x", 3000)
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"A","ratings_count":"10","description":"<p>An <b>epic</b> tale.</p>"}
{"book_id":"2","title":"B","ratings_count":"20","description":"`+long+`"}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	_, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	assert.Equal(t, "An **epic** tale.", store.books["1"].Description)
	assert.Len(t, store.books["2"].Description, maxDescriptionLen)
}

func TestBookLoader_LoadGenre_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"A","ratings_count":"10","authors":[{"author_id":"a1","role":""}]}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	for i := 0; i < 2; i++ {
		_, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
		require.NoError(t, err)
	}

	// book nodes converge; edges are merged by the store on bookId+authorId
	assert.Len(t, store.books, 1)
	assert.Len(t, store.authorships, 2)
	assert.Equal(t, store.authorships[0], store.authorships[1])
}

func TestBookLoader_LoadGenre_MalformedLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "goodreads_books_fantasy.json",
		`{"book_id":"1","title":"A","ratings_count":"10"}
{{{not json
{"book_id":"2","title":"B","ratings_count":"20"}
`)

	store := newFakeStore()
	l := NewBookLoader(store, nil, 500, 10, logger.Discard())

	stats, _, err := l.LoadGenre(context.Background(), testGenre(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Books)
	assert.Equal(t, 1, stats.Malformed)
}

func TestFilterShelves_SkipsUnnamed(t *testing.T) {
	shelves := filterShelves([]corpus.Record{
		{"name": "", "count": "50"},
		{"name": "fantasy", "count": "50"},
	})

	require.Len(t, shelves, 1)
	assert.Equal(t, "fantasy", shelves[0].Name)
}
