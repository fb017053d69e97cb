package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/watcher"
)

// CorpusWatcherHandle wraps the corpus watcher with its context for
// lifecycle management.
type CorpusWatcherHandle struct {
	*watcher.CorpusWatcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CorpusWatcherHandle) Shutdown() error {
	if h.CorpusWatcher == nil {
		return nil
	}
	h.cancel()
	return h.Close()
}

// ProvideCorpusWatcher provides the corpus staleness watcher. A missing
// data directory is not fatal: the server runs without staleness tracking.
func ProvideCorpusWatcher(i do.Injector) (*CorpusWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	w, err := watcher.New(cfg.Data.Dir, log)
	if err != nil {
		log.Warn("corpus watcher disabled", "dir", cfg.Data.Dir, "error", err)
		return &CorpusWatcherHandle{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Corpus watcher started", "dir", cfg.Data.Dir)

	return &CorpusWatcherHandle{CorpusWatcher: w, cancel: cancel}, nil
}
