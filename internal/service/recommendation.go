package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/recommend"
)

// RecommendService fronts the recommendation engine and its convenience
// variants.
type RecommendService struct {
	store       graph.Store
	recommender *recommend.Recommender
	log         *logger.Logger
}

// NewRecommendService creates a recommendation service.
func NewRecommendService(store graph.Store, log *logger.Logger) *RecommendService {
	return &RecommendService{
		store:       store,
		recommender: recommend.New(store, log),
		log:         log,
	}
}

// Recommend returns recommendations for a seed book using the named
// strategy. Empty strategy defaults to hybrid.
func (s *RecommendService) Recommend(ctx context.Context, bookID string, strategy domain.Strategy, limit int) ([]domain.Recommendation, error) {
	if strategy == "" {
		strategy = domain.StrategyHybrid
	}
	return s.recommender.Recommend(ctx, bookID, strategy, limit)
}

// ReadersAlsoLiked is the collaborative strategy under its friendlier name.
func (s *RecommendService) ReadersAlsoLiked(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	return s.recommender.Recommend(ctx, bookID, domain.StrategyCollaborative, limit)
}

// TopInShelf returns the most-shelved books under one shelf name.
func (s *RecommendService) TopInShelf(ctx context.Context, shelfName string, limit int) ([]graph.ShelfBook, error) {
	if limit <= 0 {
		limit = 10
	}
	books, err := s.store.ShelfBooks(ctx, shelfName, limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []graph.ShelfBook{}
	}
	return books, nil
}

// MoreByAuthor returns an author's other books, most-rated first,
// excluding the given book.
func (s *RecommendService) MoreByAuthor(ctx context.Context, authorID, excludeBookID string, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 10
	}

	// Fetch one extra so excluding the seed still fills the limit.
	books, _, err := s.store.AuthorBooks(ctx, authorID, domain.PageParams{Page: 0, Size: limit + 1})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Book, 0, limit)
	for _, b := range books {
		if b.BookID == excludeBookID {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
