package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

func (s *Server) registerGraphRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBookGraph",
		Method:      http.MethodGet,
		Path:        "/api/v1/graph/book/{id}",
		Summary:     "Get book neighborhood graph",
		Description: "Returns a renderable subgraph around a book: authors, shelves, series, and similar titles",
		Tags:        []string{"Graph"},
	}, s.handleBookGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthorGraph",
		Method:      http.MethodGet,
		Path:        "/api/v1/graph/author/{id}",
		Summary:     "Get author graph",
		Description: "Returns an author with their books fanning out",
		Tags:        []string{"Graph"},
	}, s.handleAuthorGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelfGraph",
		Method:      http.MethodGet,
		Path:        "/api/v1/graph/shelf/{name}",
		Summary:     "Get shelf graph",
		Description: "Returns a shelf with its most-shelved books fanning out",
		Tags:        []string{"Graph"},
	}, s.handleShelfGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendationGraph",
		Method:      http.MethodGet,
		Path:        "/api/v1/graph/recommendations/{id}",
		Summary:     "Get recommendation graph",
		Description: "Returns hybrid recommendations rendered as a star around the seed book",
		Tags:        []string{"Graph"},
	}, s.handleRecommendationGraph)
}

// === DTOs ===

type BookGraphInput struct {
	ID      string `path:"id" doc:"Book ID"`
	Depth   int    `query:"depth" minimum:"1" maximum:"3" doc:"Similarity hops (default 1)"`
	Readers bool   `query:"readers" doc:"Include top raters of the book"`
}

type AuthorGraphInput struct {
	ID    string `path:"id" doc:"Author ID"`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum books (default 20)"`
}

type ShelfGraphInput struct {
	Name  string `path:"name" doc:"Shelf name"`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum books (default 20)"`
}

type RecommendationGraphInput struct {
	ID    string `path:"id" doc:"Seed book ID"`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum recommendations (default 10)"`
}

type GraphOutput struct {
	Body domain.Graph
}

// === Handlers ===

func (s *Server) handleBookGraph(ctx context.Context, input *BookGraphInput) (*GraphOutput, error) {
	g, err := s.services.Graph.BookNeighborhood(ctx, input.ID, service.NeighborhoodOptions{
		Depth:          input.Depth,
		IncludeReaders: input.Readers,
	})
	if err != nil {
		return nil, err
	}
	return &GraphOutput{Body: *g}, nil
}

func (s *Server) handleAuthorGraph(ctx context.Context, input *AuthorGraphInput) (*GraphOutput, error) {
	g, err := s.services.Graph.AuthorGraph(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, err
	}
	return &GraphOutput{Body: *g}, nil
}

func (s *Server) handleShelfGraph(ctx context.Context, input *ShelfGraphInput) (*GraphOutput, error) {
	g, err := s.services.Graph.ShelfGraph(ctx, input.Name, input.Limit)
	if err != nil {
		return nil, err
	}
	return &GraphOutput{Body: *g}, nil
}

func (s *Server) handleRecommendationGraph(ctx context.Context, input *RecommendationGraphInput) (*GraphOutput, error) {
	g, err := s.services.Graph.RecommendationGraph(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, err
	}
	return &GraphOutput{Body: *g}, nil
}
