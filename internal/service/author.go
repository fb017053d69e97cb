package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// AuthorService serves author lookups.
type AuthorService struct {
	store graph.Store
	log   *logger.Logger
}

// NewAuthorService creates an author service.
func NewAuthorService(store graph.Store, log *logger.Logger) *AuthorService {
	return &AuthorService{store: store, log: log}
}

// GetAuthor returns one author by identifier.
func (s *AuthorService) GetAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	return s.store.Author(ctx, authorID)
}

// GetAuthorBooks returns an author's books, most-rated first.
func (s *AuthorService) GetAuthorBooks(ctx context.Context, authorID string, page domain.PageParams) (*domain.Page[domain.Book], error) {
	page.Validate()

	books, total, err := s.store.AuthorBooks(ctx, authorID, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(books, page, total), nil
}
