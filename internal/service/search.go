package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/normalize"
	"github.com/bookfinder/bookfinder-server/internal/search"
)

// Suggester is the typeahead slice of the search index. Nil-able: a server
// started before any load run has no index yet.
type Suggester interface {
	Suggest(ctx context.Context, prefix string, limit int) ([]search.Suggestion, error)
}

// SearchService runs full-text catalog search and typeahead.
type SearchService struct {
	store     graph.Store
	suggester Suggester
	log       *logger.Logger
}

// NewSearchService creates a search service. suggester may be nil.
func NewSearchService(store graph.Store, suggester Suggester, log *logger.Logger) *SearchService {
	return &SearchService{store: store, suggester: suggester, log: log}
}

// SearchRequest is a full-text search with optional filters.
type SearchRequest struct {
	Query     string
	MinRating float64
	MinYear   int
	MaxYear   int
	Genre     string
	Shelves   []string
	Page      domain.PageParams
}

// Search sanitizes the query and runs it against the graph's full-text
// index. A query that is empty after sanitization returns an empty page.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*domain.Page[domain.SearchHit], error) {
	req.Page.Validate()

	query := normalize.Query(req.Query)
	if query == "" {
		return domain.NewPage([]domain.SearchHit{}, req.Page, 0), nil
	}

	hits, total, err := s.store.Search(ctx, graph.SearchParams{
		Query:     query,
		MinRating: req.MinRating,
		MinYear:   req.MinYear,
		MaxYear:   req.MaxYear,
		Genre:     req.Genre,
		Shelves:   req.Shelves,
		Page:      req.Page,
	})
	if err != nil {
		return nil, err
	}
	return domain.NewPage(hits, req.Page, total), nil
}

// Autocomplete returns typeahead suggestions from the local index.
// Without an index it degrades to an empty list rather than erroring.
func (s *SearchService) Autocomplete(ctx context.Context, prefix string, limit int) ([]search.Suggestion, error) {
	if s.suggester == nil {
		return []search.Suggestion{}, nil
	}

	suggestions, err := s.suggester.Suggest(ctx, normalize.Query(prefix), limit)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []search.Suggestion{}
	}
	return suggestions, nil
}
