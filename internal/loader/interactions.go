package loader

import (
	"context"
	"fmt"

	"github.com/bookfinder/bookfinder-server/internal/corpus"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// InteractionLoader streams reader rating events into the graph. The dump
// holds hundreds of millions of rows; only those touching selected books
// count against the cap, so a sparse genre still fills its quota.
type InteractionLoader struct {
	store     graph.Store
	log       *logger.Logger
	batchSize int
	maxRows   int
}

// NewInteractionLoader creates an interaction loader.
func NewInteractionLoader(store graph.Store, batchSize, maxRows int, log *logger.Logger) *InteractionLoader {
	return &InteractionLoader{
		store:     store,
		log:       log,
		batchSize: batchSize,
		maxRows:   maxRows,
	}
}

// Load streams the interactions file, keeping rows that reference a
// selected book, until the cap is reached. Returns the number loaded.
func (l *InteractionLoader) Load(ctx context.Context, path string, selected map[string]struct{}) (int, error) {
	reader := corpus.NewReader(path, l.log)

	var batch []graph.Interaction
	loaded := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.store.UpsertInteractions(ctx, batch); err != nil {
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
		if userID == "" {
			return nil
		}

		batch = append(batch, graph.Interaction{
			UserID:    userID,
			BookID:    bookID,
			Rating:    rec.Int("rating"),
			IsRead:    rec.Bool("is_read"),
			DateAdded: rec.Str("date_added"),
		})

		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("load interactions: %w", err)
	}

	if err := flush(); err != nil {
		return loaded, fmt.Errorf("flush interactions: %w", err)
	}

	l.log.Info("interactions loaded", "file", path, "loaded", loaded)
	return loaded, nil
}
