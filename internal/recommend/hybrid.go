package recommend

import (
	"context"
	"sort"
	"sync"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

// Strategy weights for hybrid fusion. Graph walks get the largest share
// since curated similarity edges are the strongest signal in the corpus.
const (
	weightGraph         = 0.4
	weightShelf         = 0.3
	weightCollaborative = 0.3
)

type strategyResult struct {
	weight float64
	recs   []domain.Recommendation
	err    error
}

// hybrid fans the three base strategies out concurrently, normalizes each
// result set by its own maximum score, and blends them by weight. Each base
// strategy is asked for twice the final limit so fusion has candidates to
// work with beyond any single strategy's head.
func (r *Recommender) hybrid(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	fetchLimit := limit * 2

	results := make([]strategyResult, 3)
	var wg sync.WaitGroup
	for i, run := range []struct {
		weight float64
		fetch  func(context.Context, string, int) ([]domain.Recommendation, error)
	}{
		{weightGraph, r.store.RecommendGraph},
		{weightShelf, r.store.RecommendShelf},
		{weightCollaborative, r.store.RecommendCollaborative},
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := run.fetch(ctx, bookID, fetchLimit)
			results[i] = strategyResult{weight: run.weight, recs: recs, err: err}
		}()
	}
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
	}

	// Blend in fixed strategy order so candidate attributes come from the
	// first strategy that produced them, regardless of goroutine timing.
	scores := make(map[string]float64)
	candidates := make(map[string]domain.Recommendation)
	var order []string

	for _, res := range results {
		maxScore := 0.0
		for _, rec := range res.recs {
			if rec.Score > maxScore {
				maxScore = rec.Score
			}
		}
		if maxScore == 0 {
			maxScore = 1
		}

		for _, rec := range res.recs {
			id := rec.BookID
			scores[id] += res.weight * (rec.Score / maxScore)
			if _, seen := candidates[id]; !seen {
				candidates[id] = rec
				order = append(order, id)
			}
		}
	}

	fused := make([]domain.Recommendation, 0, len(order))
	for _, id := range order {
		rec := candidates[id]
		rec.Score = scores[id]
		rec.Strategy = domain.StrategyHybrid
		fused = append(fused, rec)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, nil
}
