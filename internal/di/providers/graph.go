package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// GraphStoreHandle wraps the Neo4j store with shutdown capability.
type GraphStoreHandle struct {
	*graph.Neo4jStore
}

// Shutdown implements do.Shutdownable.
func (h *GraphStoreHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Close(ctx)
}

// ProvideGraphStore provides the Neo4j graph store.
func ProvideGraphStore(i do.Injector) (*GraphStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	store, err := graph.NewNeo4jStore(ctx, cfg.Neo4j, log)
	if err != nil {
		return nil, err
	}

	log.Info("Graph store connected", "uri", cfg.Neo4j.URI, "database", cfg.Neo4j.Database)

	return &GraphStoreHandle{Neo4jStore: store}, nil
}
