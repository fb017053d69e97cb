package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/id"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/watcher"
)

// RebuildIndexer is a typeahead index that can be wiped and refilled
// during a load.
type RebuildIndexer interface {
	SearchIndexer
	Reset() error
}

// Summary reports the outcome of a full load run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Genres   []GenreStats  `json:"genres"`
	Authors  int           `json:"authors_submitted"`
	Counts   *graph.Counts `json:"counts"`
	Duration time.Duration `json:"duration"`
}

// Runner orchestrates a full corpus load: wipe, schema, per-genre book and
// interaction loads, author enrichment, then the search indexes. Any batch
// failure aborts the run; the next run starts from a clean wipe, so there
// is no checkpoint state to manage.
type Runner struct {
	store graph.Store
	index RebuildIndexer
	cfg   config.DataConfig
	log   *logger.Logger
}

// NewRunner creates a load runner. index may be nil when no typeahead
// index is wanted (the offline loader CLI without a serving index).
func NewRunner(store graph.Store, index RebuildIndexer, cfg config.DataConfig, log *logger.Logger) *Runner {
	return &Runner{store: store, index: index, cfg: cfg, log: log}
}

// Run executes the full pipeline and returns a summary.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runID := id.MustGenerate("load")
	start := time.Now()
	log := r.log.With("run_id", runID)

	log.Info("starting corpus load",
		"data_dir", r.cfg.Dir,
		"genres", len(r.cfg.Genres),
		"subset_size", r.cfg.SubsetSize)

	if err := r.store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear graph: %w", err)
	}
	if err := r.store.Setup(ctx); err != nil {
		return nil, fmt.Errorf("set up schema: %w", err)
	}
	if r.index != nil {
		if err := r.index.Reset(); err != nil {
			return nil, fmt.Errorf("reset search index: %w", err)
		}
	}

	summary := &Summary{RunID: runID}

	books := NewBookLoader(r.store, r.index, r.cfg.BatchSize, r.cfg.SubsetSize, r.log)
	interactions := NewInteractionLoader(r.store, r.cfg.BatchSize, r.cfg.MaxInteractions, r.log)
	reviews := NewReviewLoader(r.store, r.cfg.BatchSize, r.cfg.MaxReviews, r.log)

	for _, genre := range r.cfg.Genres {
		log.Info("loading genre", "genre", genre.Key)

		stats, selected, err := books.LoadGenre(ctx, genre, r.cfg.Dir)
		if err != nil {
			return nil, err
		}

		if path := genre.InteractionsPath(r.cfg.Dir); fileExists(path) {
			stats.Interactions, err = interactions.Load(ctx, path, selected)
			if err != nil {
				return nil, err
			}
		} else {
			log.Warn("no interactions file for genre", "genre", genre.Key, "path", path)
		}

		if path := genre.ReviewsPath(r.cfg.Dir); fileExists(path) {
			stats.Reviews, err = reviews.Load(ctx, path, selected)
			if err != nil {
				return nil, err
			}
		} else {
			log.Warn("no reviews file for genre", "genre", genre.Key, "path", path)
		}

		summary.Genres = append(summary.Genres, *stats)
	}

	if path := r.cfg.AuthorsPath(); fileExists(path) {
		authors := NewAuthorLoader(r.store, r.cfg.BatchSize, r.log)
		submitted, err := authors.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		summary.Authors = submitted
	} else {
		log.Warn("no authors file", "path", r.cfg.AuthorsPath())
	}

	// The full-text index goes in last so it never indexes half-written
	// book properties.
	if err := r.store.EnsureFullTextIndex(ctx); err != nil {
		return nil, fmt.Errorf("create full-text index: %w", err)
	}

	counts, err := r.store.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count graph contents: %w", err)
	}
	summary.Counts = counts
	summary.Duration = time.Since(start)

	// Rewriting the marker tells a watching API server the graph matches
	// the corpus again. The load itself already succeeded, so a write
	// failure here only warns.
	markerPath := filepath.Join(r.cfg.Dir, watcher.MarkerFile)
	if err := os.WriteFile(markerPath, []byte(runID+"\n"), 0o644); err != nil {
		log.Warn("could not write load marker", "path", markerPath, "error", err)
	}

	log.Info("corpus load complete",
		"books", counts.Books,
		"authors", counts.Authors,
		"users", counts.Users,
		"shelves", counts.Shelves,
		"series", counts.Series,
		"similarities", counts.Similarities,
		"interactions", counts.Interactions,
		"reviews", counts.Reviews,
		"duration", summary.Duration)

	return summary, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
