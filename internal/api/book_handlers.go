package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns a page of the catalog, optionally filtered by genre",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book with its authors, shelves, and series",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "Get book reviews",
		Description: "Returns a page of reviews for a book, most voted first",
		Tags:        []string{"Books"},
	}, s.handleGetBookReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSimilarBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/similar",
		Summary:     "Get similar books",
		Description: "Returns curated similar titles, most rated first",
		Tags:        []string{"Books"},
	}, s.handleGetSimilarBooks)
}

// === DTOs ===

type ListBooksInput struct {
	Genre  string `query:"genre" doc:"Restrict to one genre key"`
	SortBy string `query:"sort_by" enum:"title,pub_year,average_rating,ratings_count" doc:"Sort field"`
	Order  string `query:"order" enum:"asc,desc" doc:"Sort direction"`
	Page   int    `query:"page" minimum:"0" doc:"Zero-based page number"`
	Size   int    `query:"size" maximum:"100" doc:"Page size (default 20)"`
}

type BookPageOutput struct {
	Body domain.Page[domain.Book]
}

type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

type BookDetailOutput struct {
	Body domain.BookDetail
}

type BookReviewsInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Page int    `query:"page" minimum:"0" doc:"Zero-based page number"`
	Size int    `query:"size" maximum:"100" doc:"Page size (default 20)"`
}

type ReviewPageOutput struct {
	Body domain.Page[domain.Review]
}

type SimilarBooksInput struct {
	ID    string `path:"id" doc:"Book ID"`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum results (default 10)"`
}

type BookListOutput struct {
	Body []domain.Book
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*BookPageOutput, error) {
	page, err := s.services.Book.ListBooks(ctx, service.ListBooksRequest{
		Genre:  input.Genre,
		SortBy: input.SortBy,
		Order:  input.Order,
		Page:   domain.PageParams{Page: input.Page, Size: input.Size},
	})
	if err != nil {
		return nil, err
	}
	return &BookPageOutput{Body: *page}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookDetailOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookDetailOutput{Body: *book}, nil
}

func (s *Server) handleGetBookReviews(ctx context.Context, input *BookReviewsInput) (*ReviewPageOutput, error) {
	page, err := s.services.Book.GetBookReviews(ctx, input.ID, domain.PageParams{Page: input.Page, Size: input.Size})
	if err != nil {
		return nil, err
	}
	return &ReviewPageOutput{Body: *page}, nil
}

func (s *Server) handleGetSimilarBooks(ctx context.Context, input *SimilarBooksInput) (*BookListOutput, error) {
	books, err := s.services.Book.GetSimilarBooks(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}
