package loader

import (
	"context"
	"fmt"

	"github.com/bookfinder/bookfinder-server/internal/corpus"
	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// maxReviewTextLen bounds stored review text.
const maxReviewTextLen = 500

// ReviewLoader streams reader reviews into the graph, capped the same way
// interactions are: only rows on selected books count.
type ReviewLoader struct {
	store     graph.Store
	log       *logger.Logger
	batchSize int
	maxRows   int
}

// NewReviewLoader creates a review loader.
func NewReviewLoader(store graph.Store, batchSize, maxRows int, log *logger.Logger) *ReviewLoader {
	return &ReviewLoader{
		store:     store,
		log:       log,
		batchSize: batchSize,
		maxRows:   maxRows,
	}
}

// Load streams the reviews file until the cap is reached. Rows without a
// selected book, a user, or any review text are skipped. Returns the
// number loaded.
func (l *ReviewLoader) Load(ctx context.Context, path string, selected map[string]struct{}) (int, error) {
	reader := corpus.NewReader(path, l.log)

	var batch []graph.ReviewLink
	loaded := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.store.UpsertReviews(ctx, batch); err != nil {
			return err
		}
		loaded += len(batch)
		batch = batch[:0]
		return nil
	}

	_, err := reader.Scan(ctx, func(rec corpus.Record) error {
		if loaded+len(batch) >= l.maxRows {
			return corpus.ErrStop
		}
		bookID := rec.Str("book_id")
		if _, ok := selected[bookID]; !ok {
			return nil
		}
		userID := rec.Str("user_id")
		text := rec.Str("review_text")
		if userID == "" || text == "" {
			return nil
		}

		batch = append(batch, graph.ReviewLink{
			BookID: bookID,
			Review: domain.Review{
				ReviewID:  rec.Str("review_id"),
				UserID:    userID,
				Rating:    rec.Int("rating"),
				Text:      truncate(text, maxReviewTextLen),
				NVotes:    rec.Int("n_votes"),
				NComments: rec.Int("n_comments"),
				DateAdded: rec.Str("date_added"),
			},
		})

		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("load reviews: %w", err)
	}

	if err := flush(); err != nil {
		return loaded, fmt.Errorf("flush reviews: %w", err)
	}

	l.log.Info("reviews loaded", "file", path, "loaded", loaded)
	return loaded, nil
}
