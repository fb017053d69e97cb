package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

const defaultShelfLimit = 20

// GenreService serves genre browsing and shelf aggregates.
type GenreService struct {
	store graph.Store
	log   *logger.Logger
}

// NewGenreService creates a genre service.
func NewGenreService(store graph.Store, log *logger.Logger) *GenreService {
	return &GenreService{store: store, log: log}
}

// ListGenres returns every genre with its book count.
func (s *GenreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.store.Genres(ctx)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	return genres, nil
}

// GenreBooks returns a page of books in one genre, most-rated first.
func (s *GenreService) GenreBooks(ctx context.Context, genreKey string, page domain.PageParams) (*domain.Page[domain.Book], error) {
	page.Validate()

	books, total, err := s.store.GenreBooks(ctx, genreKey, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(books, page, total), nil
}

// TopShelves returns the most-used shelves within one genre.
func (s *GenreService) TopShelves(ctx context.Context, genreKey string, limit int) ([]domain.Shelf, error) {
	if limit <= 0 {
		limit = defaultShelfLimit
	}
	return s.topShelves(ctx, genreKey, limit)
}

// GlobalTopShelves returns the most-used shelves across the whole graph.
func (s *GenreService) GlobalTopShelves(ctx context.Context, limit int) ([]domain.Shelf, error) {
	if limit <= 0 {
		limit = defaultShelfLimit
	}
	return s.topShelves(ctx, "", limit)
}

func (s *GenreService) topShelves(ctx context.Context, genre string, limit int) ([]domain.Shelf, error) {
	shelves, err := s.store.TopShelves(ctx, genre, limit)
	if err != nil {
		return nil, err
	}
	if shelves == nil {
		shelves = []domain.Shelf{}
	}
	return shelves, nil
}
