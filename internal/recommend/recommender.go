// Package recommend turns graph traversals into ranked book recommendations.
//
// Three base strategies read different relationship layers of the graph;
// the hybrid strategy fans them out concurrently and fuses the results.
// All strategies dedupe near-identical editions before returning.
package recommend

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/errors"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Source is the slice of the graph store the recommender reads.
type Source interface {
	RecommendGraph(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	RecommendShelf(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	RecommendCollaborative(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
}

// Recommender produces recommendations for a seed book.
type Recommender struct {
	store Source
	log   *logger.Logger
}

// New creates a recommender backed by the given source.
func New(store Source, log *logger.Logger) *Recommender {
	return &Recommender{store: store, log: log}
}

// Recommend returns up to limit recommendations for the seed book using the
// given strategy. A seed with no graph context yields an empty list, not an
// error.
func (r *Recommender) Recommend(ctx context.Context, bookID string, strategy domain.Strategy, limit int) ([]domain.Recommendation, error) {
	if bookID == "" {
		return nil, errors.Validation("book id is required")
	}
	if !strategy.Valid() {
		return nil, errors.Validation("unknown strategy: " + string(strategy))
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var (
		recs []domain.Recommendation
		err  error
	)
	switch strategy {
	case domain.StrategyGraph:
		recs, err = r.store.RecommendGraph(ctx, bookID, limit)
	case domain.StrategyShelf:
		recs, err = r.store.RecommendShelf(ctx, bookID, limit)
	case domain.StrategyCollaborative:
		recs, err = r.store.RecommendCollaborative(ctx, bookID, limit)
	case domain.StrategyHybrid:
		recs, err = r.hybrid(ctx, bookID, limit)
	}
	if err != nil {
		return nil, err
	}

	recs = Dedupe(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	r.log.Debug("recommendations computed",
		"book_id", bookID,
		"strategy", strategy,
		"count", len(recs))
	return recs, nil
}
