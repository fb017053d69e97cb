package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
)

func (s *Server) registerBrowseRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns every loaded genre with its book count",
		Tags:        []string{"Browse"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenreBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{key}/books",
		Summary:     "Get genre books",
		Description: "Returns a page of books in a genre, most rated first",
		Tags:        []string{"Browse"},
	}, s.handleGenreBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenreShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{key}/shelves",
		Summary:     "Get genre shelves",
		Description: "Returns the most-used shelves within a genre",
		Tags:        []string{"Browse"},
	}, s.handleGenreShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTopShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/top",
		Summary:     "Get top shelves",
		Description: "Returns the most-used shelves across the catalog",
		Tags:        []string{"Browse"},
	}, s.handleTopShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelfTopBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{name}/top",
		Summary:     "Get top books in shelf",
		Description: "Returns the most-shelved books under one shelf name",
		Tags:        []string{"Browse"},
	}, s.handleShelfTopBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Get author",
		Description: "Returns an author by ID",
		Tags:        []string{"Browse"},
	}, s.handleGetAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthorBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors/{id}/books",
		Summary:     "Get author books",
		Description: "Returns a page of an author's books, most rated first",
		Tags:        []string{"Browse"},
	}, s.handleGetAuthorBooks)
}

// === DTOs ===

type GenresOutput struct {
	Body []domain.Genre
}

type GenreBooksInput struct {
	Key  string `path:"key" doc:"Genre key"`
	Page int    `query:"page" minimum:"0" doc:"Zero-based page number"`
	Size int    `query:"size" maximum:"100" doc:"Page size (default 20)"`
}

type GenreShelvesInput struct {
	Key   string `path:"key" doc:"Genre key"`
	Limit int    `query:"limit" maximum:"100" doc:"Maximum shelves (default 20)"`
}

type TopShelvesInput struct {
	Limit int `query:"limit" maximum:"100" doc:"Maximum shelves (default 20)"`
}

type ShelvesOutput struct {
	Body []domain.Shelf
}

type ShelfTopBooksInput struct {
	Name  string `path:"name" doc:"Shelf name"`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum results (default 10)"`
}

type ShelfBooksOutput struct {
	Body []graph.ShelfBook
}

type AuthorIDInput struct {
	ID string `path:"id" doc:"Author ID"`
}

type AuthorOutput struct {
	Body domain.Author
}

type AuthorBooksInput struct {
	ID   string `path:"id" doc:"Author ID"`
	Page int    `query:"page" minimum:"0" doc:"Zero-based page number"`
	Size int    `query:"size" maximum:"100" doc:"Page size (default 20)"`
}

// === Handlers ===

func (s *Server) handleListGenres(ctx context.Context, _ *struct{}) (*GenresOutput, error) {
	genres, err := s.services.Genre.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	return &GenresOutput{Body: genres}, nil
}

func (s *Server) handleGenreBooks(ctx context.Context, input *GenreBooksInput) (*BookPageOutput, error) {
	page, err := s.services.Genre.GenreBooks(ctx, input.Key, domain.PageParams{Page: input.Page, Size: input.Size})
	if err != nil {
		return nil, err
	}
	return &BookPageOutput{Body: *page}, nil
}

func (s *Server) handleGenreShelves(ctx context.Context, input *GenreShelvesInput) (*ShelvesOutput, error) {
	shelves, err := s.services.Genre.TopShelves(ctx, input.Key, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ShelvesOutput{Body: shelves}, nil
}

func (s *Server) handleTopShelves(ctx context.Context, input *TopShelvesInput) (*ShelvesOutput, error) {
	shelves, err := s.services.Genre.GlobalTopShelves(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ShelvesOutput{Body: shelves}, nil
}

func (s *Server) handleShelfTopBooks(ctx context.Context, input *ShelfTopBooksInput) (*ShelfBooksOutput, error) {
	books, err := s.services.Recommend.TopInShelf(ctx, input.Name, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ShelfBooksOutput{Body: books}, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *AuthorIDInput) (*AuthorOutput, error) {
	author, err := s.services.Author.GetAuthor(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: *author}, nil
}

func (s *Server) handleGetAuthorBooks(ctx context.Context, input *AuthorBooksInput) (*BookPageOutput, error) {
	page, err := s.services.Author.GetAuthorBooks(ctx, input.ID, domain.PageParams{Page: input.Page, Size: input.Size})
	if err != nil {
		return nil, err
	}
	return &BookPageOutput{Body: *page}, nil
}
