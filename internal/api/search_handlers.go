package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/search"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Full-text search over titles, descriptions, and publishers with optional filters",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "autocomplete",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/autocomplete",
		Summary:     "Autocomplete titles",
		Description: "Returns typeahead title suggestions for a prefix",
		Tags:        []string{"Search"},
	}, s.handleAutocomplete)
}

// === DTOs ===

type SearchInput struct {
	Query     string   `query:"q" required:"true" doc:"Search terms"`
	MinRating float64  `query:"min_rating" maximum:"5" doc:"Minimum average rating"`
	MinYear   int      `query:"min_year" doc:"Earliest publication year"`
	MaxYear   int      `query:"max_year" doc:"Latest publication year"`
	Genre     string   `query:"genre" doc:"Restrict to one genre key"`
	Shelves   []string `query:"shelves" doc:"Restrict to books on any of these shelves"`
	Page      int      `query:"page" minimum:"0" doc:"Zero-based page number"`
	Size      int      `query:"size" maximum:"100" doc:"Page size (default 20)"`
}

type SearchPageOutput struct {
	Body domain.Page[domain.SearchHit]
}

type AutocompleteInput struct {
	Query string `query:"q" required:"true" doc:"Title prefix"`
	Limit int    `query:"limit" maximum:"25" doc:"Maximum suggestions (default 10)"`
}

type AutocompleteOutput struct {
	Body []search.Suggestion
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchPageOutput, error) {
	page, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:     input.Query,
		MinRating: input.MinRating,
		MinYear:   input.MinYear,
		MaxYear:   input.MaxYear,
		Genre:     input.Genre,
		Shelves:   input.Shelves,
		Page:      domain.PageParams{Page: input.Page, Size: input.Size},
	})
	if err != nil {
		return nil, err
	}
	return &SearchPageOutput{Body: *page}, nil
}

func (s *Server) handleAutocomplete(ctx context.Context, input *AutocompleteInput) (*AutocompleteOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	suggestions, err := s.services.Search.Autocomplete(ctx, input.Query, limit)
	if err != nil {
		return nil, err
	}
	return &AutocompleteOutput{Body: suggestions}, nil
}
