// Package main provides the corpus loader: it rebuilds the book graph and
// the typeahead index from the configured corpus files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/loader"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/search"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := graph.NewNeo4jStore(ctx, cfg.Neo4j, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn("closing graph store", "error", err)
		}
	}()

	index, err := search.NewIndex(search.Options{DataPath: cfg.Data.Dir, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		if err := index.Close(); err != nil {
			log.Warn("closing typeahead index", "error", err)
		}
	}()

	runner := loader.NewRunner(store, index, cfg.Data, log)

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("Load complete",
		"run_id", summary.RunID,
		"genres", len(summary.Genres),
		"books", summary.Counts.Books,
		"duration", summary.Duration.Round(time.Second).String(),
	)
	return nil
}
