package loader

import (
	"context"
	"fmt"

	"github.com/bookfinder/bookfinder-server/internal/corpus"
	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// AuthorLoader enriches author nodes with names and rating metadata from
// the authors dump. It runs after the book loads, and only updates authors
// the book loads already created.
type AuthorLoader struct {
	store     graph.Store
	log       *logger.Logger
	batchSize int
}

// NewAuthorLoader creates an author metadata loader.
func NewAuthorLoader(store graph.Store, batchSize int, log *logger.Logger) *AuthorLoader {
	return &AuthorLoader{store: store, log: log, batchSize: batchSize}
}

// Load streams the authors file and updates matching author nodes.
// Returns the number of rows submitted.
func (l *AuthorLoader) Load(ctx context.Context, path string) (int, error) {
	reader := corpus.NewReader(path, l.log)

	var batch []domain.Author
	submitted := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.store.UpdateAuthors(ctx, batch); err != nil {
			return err
		}
		submitted += len(batch)
		batch = batch[:0]
		return nil
	}

	_, err := reader.Scan(ctx, func(rec corpus.Record) error {
		authorID := rec.Str("author_id")
		if authorID == "" {
			return nil
		}

		batch = append(batch, domain.Author{
			AuthorID:      authorID,
			Name:          rec.Str("name"),
			AverageRating: rec.Float("average_rating"),
			RatingsCount:  rec.Int64("ratings_count"),
		})

		if len(batch) >= l.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return submitted, fmt.Errorf("load authors: %w", err)
	}

	if err := flush(); err != nil {
		return submitted, fmt.Errorf("flush authors: %w", err)
	}

	l.log.Info("author metadata loaded", "file", path, "submitted", submitted)
	return submitted, nil
}
