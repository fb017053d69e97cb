package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/service"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports server liveness and graph backend reachability",
		Tags:        []string{"System"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get graph stats",
		Description: "Returns node and relationship counts plus corpus staleness",
		Tags:        []string{"System"},
	}, s.handleStats)
}

// === DTOs ===

type HealthOutput struct {
	Body service.Health
}

type StatsOutput struct {
	Body service.Stats
}

// === Handlers ===

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: *s.services.Stats.Health(ctx)}, nil
}

func (s *Server) handleStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := s.services.Stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsOutput{Body: *stats}, nil
}
