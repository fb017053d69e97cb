// Package service implements the discovery operations behind the HTTP API.
package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// defaultSimilarLimit bounds the similar-books endpoint when no limit is given.
const defaultSimilarLimit = 10

// BookService orchestrates catalog browsing operations.
type BookService struct {
	store graph.Store
	log   *logger.Logger
}

// NewBookService creates a new book service.
func NewBookService(store graph.Store, log *logger.Logger) *BookService {
	return &BookService{store: store, log: log}
}

// ListBooksRequest filters and orders the catalog listing.
type ListBooksRequest struct {
	Genre  string
	SortBy string
	Order  string
	Page   domain.PageParams
}

// ListBooks pages through the catalog.
func (s *BookService) ListBooks(ctx context.Context, req ListBooksRequest) (*domain.Page[domain.Book], error) {
	req.Page.Validate()

	books, total, err := s.store.ListBooks(ctx, graph.ListBooksParams{
		Genre:  req.Genre,
		SortBy: req.SortBy,
		Order:  req.Order,
		Page:   req.Page,
	})
	if err != nil {
		return nil, err
	}
	return domain.NewPage(books, req.Page, total), nil
}

// GetBook returns a book with its graph context.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	return s.store.GetBook(ctx, bookID)
}

// GetBookReviews pages a book's reviews, most-voted first.
func (s *BookService) GetBookReviews(ctx context.Context, bookID string, page domain.PageParams) (*domain.Page[domain.Review], error) {
	page.Validate()

	reviews, total, err := s.store.BookReviews(ctx, bookID, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(reviews, page, total), nil
}

// GetSimilarBooks returns curated similar titles, most-rated first.
func (s *BookService) GetSimilarBooks(ctx context.Context, bookID string, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	books, err := s.store.SimilarBooks(ctx, bookID, limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}
