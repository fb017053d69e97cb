package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

func (s *Server) registerMoodRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMoods",
		Method:      http.MethodGet,
		Path:        "/api/v1/moods",
		Summary:     "List moods",
		Description: "Returns the curated mood catalog",
		Tags:        []string{"Moods"},
	}, s.handleListMoods)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMoodBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/moods/{key}/books",
		Summary:     "Get mood books",
		Description: "Returns books matching a curated mood",
		Tags:        []string{"Moods"},
	}, s.handleMoodBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "customMoodBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/moods/custom",
		Summary:     "Get custom mood books",
		Description: "Returns books matching an ad-hoc set of shelf tags",
		Tags:        []string{"Moods"},
	}, s.handleCustomMoodBooks)
}

// === DTOs ===

type MoodsOutput struct {
	Body []domain.Mood
}

type MoodBooksInput struct {
	Key   string `path:"key" doc:"Mood key"`
	Genre string `query:"genre" doc:"Restrict to one genre key, or \"all\""`
	Limit int    `query:"limit" maximum:"50" doc:"Maximum results (default 20)"`
}

type CustomMoodInput struct {
	Body service.CustomMoodRequest
}

// === Handlers ===

func (s *Server) handleListMoods(_ context.Context, _ *struct{}) (*MoodsOutput, error) {
	return &MoodsOutput{Body: s.services.Mood.ListMoods()}, nil
}

func (s *Server) handleMoodBooks(ctx context.Context, input *MoodBooksInput) (*BookListOutput, error) {
	books, err := s.services.Mood.MoodBooks(ctx, input.Key, input.Genre, input.Limit)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleCustomMoodBooks(ctx context.Context, input *CustomMoodInput) (*BookListOutput, error) {
	books, err := s.services.Mood.CustomMoodBooks(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}
