package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// StalenessReporter reports whether the corpus on disk has changed since
// the graph was last loaded.
type StalenessReporter interface {
	Stale() bool
}

// Health is the liveness snapshot served at /health.
type Health struct {
	Status string `json:"status"` // ok or degraded
	Graph  bool   `json:"graph"`
}

// Stats is the graph summary served at /stats.
type Stats struct {
	Counts *graph.Counts `json:"counts"`
	Stale  bool          `json:"stale"`
}

// StatsService serves health and graph statistics.
type StatsService struct {
	store     graph.Store
	staleness StalenessReporter
	log       *logger.Logger
}

// NewStatsService creates a stats service. staleness may be nil when no
// corpus watcher is configured.
func NewStatsService(store graph.Store, staleness StalenessReporter, log *logger.Logger) *StatsService {
	return &StatsService{store: store, staleness: staleness, log: log}
}

// Health pings the graph backend and degrades the status when it is
// unreachable rather than failing the endpoint.
func (s *StatsService) Health(ctx context.Context) *Health {
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn("graph backend unreachable", "error", err)
		return &Health{Status: "degraded", Graph: false}
	}
	return &Health{Status: "ok", Graph: true}
}

// Stats returns node and relationship counts plus the staleness flag.
func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	stale := false
	if s.staleness != nil {
		stale = s.staleness.Stale()
	}
	return &Stats{Counts: counts, Stale: stale}, nil
}
