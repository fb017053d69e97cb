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

	"github.com/bookfinder/bookfinder-server/internal/logger"
)

func TestInteractionLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"user_id":"u1","book_id":"1","rating":"5","is_read":true,"date_added":"Mon Jul 24 00:00:00 -0700 2017"}
{"user_id":"u2","book_id":"999","rating":"4"}
{"user_id":"","book_id":"1","rating":"3"}
{"user_id":"u3","book_id":"1","rating":"2"}
`), 0o644))

	store := newFakeStore()
	l := NewInteractionLoader(store, 500, 1000, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)

	// the unselected book and the anonymous row are skipped
	assert.Equal(t, 2, loaded)
	require.Len(t, store.interactions, 2)
	assert.Equal(t, "u1", store.interactions[0].UserID)
	assert.Equal(t, 5, store.interactions[0].Rating)
	assert.True(t, store.interactions[0].IsRead)
	assert.Equal(t, "Mon Jul 24 00:00:00 -0700 2017", store.interactions[0].DateAdded)
}

func TestInteractionLoader_Load_ZeroCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"user_id":"u1","book_id":"1","rating":"5"}
`), 0o644))

	store := newFakeStore()
	l := NewInteractionLoader(store, 500, 0, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)
	assert.Equal(t, 0, loaded)
	assert.Empty(t, store.interactions)
}

func TestInteractionLoader_Load_CapCountsLoadedNotScanned(t *testing.T) {
	var lines []string
	for i := 0; i < 100; i++ {
		// even rows hit an unselected book and must not count against the cap
		book := "1"
		if i%2 == 0 {
			book = "999"
		}
		lines = append(lines, fmt.Sprintf(`{"user_id":"u%d","book_id":"%s","rating":"4"}`, i, book))
	}
	path := filepath.Join(t.TempDir(), "interactions.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	store := newFakeStore()
	l := NewInteractionLoader(store, 10, 30, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)

	assert.Equal(t, 30, loaded)
	assert.Len(t, store.interactions, 30)
}

func TestReviewLoader_Load(t *testing.T) {
	long := strings.Repeat("r", 800)
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"review_id":"r1","user_id":"u1","book_id":"1","rating":"5","review_text":"Loved it","n_votes":"12","n_comments":"3","date_added":"Wed Jan 09 00:00:00 -0800 2013"}
{"review_id":"r2","user_id":"u2","book_id":"1","rating":"1","review_text":""}
{"review_id":"r3","user_id":"u3","book_id":"999","rating":"4","review_text":"nope"}
{"review_id":"r4","user_id":"u4","book_id":"1","rating":"3","review_text":"`+long+`"}
`), 0o644))

	store := newFakeStore()
	l := NewReviewLoader(store, 500, 1000, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)

	assert.Equal(t, 2, loaded)
	require.Len(t, store.reviews, 2)
	assert.Equal(t, "Loved it", store.reviews[0].Review.Text)
	assert.Equal(t, 12, store.reviews[0].Review.NVotes)
	assert.Equal(t, 3, store.reviews[0].Review.NComments)
	assert.Equal(t, "Wed Jan 09 00:00:00 -0800 2013", store.reviews[0].Review.DateAdded)
	assert.Len(t, store.reviews[1].Review.Text, maxReviewTextLen)
}

func TestReviewLoader_Load_ZeroCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"review_id":"r1","user_id":"u1","book_id":"1","rating":"5","review_text":"fine"}
`), 0o644))

	store := newFakeStore()
	l := NewReviewLoader(store, 500, 0, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)
	assert.Equal(t, 0, loaded)
	assert.Empty(t, store.reviews)
}

func TestReviewLoader_Load_Cap(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf(`{"review_id":"r%d","user_id":"u%d","book_id":"1","rating":"4","review_text":"fine"}`, i, i))
	}
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	store := newFakeStore()
	l := NewReviewLoader(store, 7, 20, logger.Discard())

	loaded, err := l.Load(context.Background(), path, map[string]struct{}{"1": {}})
	require.NoError(t, err)
	assert.Equal(t, 20, loaded)
}

func TestAuthorLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"author_id":"a1","name":"Ursula K. Le Guin","average_rating":"4.12","ratings_count":"50000"}
{"author_id":"","name":"Nobody"}
`), 0o644))

	store := newFakeStore()
	l := NewAuthorLoader(store, 500, logger.Discard())

	submitted, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, submitted)
	require.Len(t, store.authors, 1)
	assert.Equal(t, "Ursula K. Le Guin", store.authors[0].Name)
	assert.InDelta(t, 4.12, store.authors[0].AverageRating, 1e-9)
}
