// Package watcher monitors the corpus directory and flags the loaded graph
// as stale once any corpus file changes on disk. Staleness is a latch: it
// stays set until the loader's run marker is rewritten or MarkFresh is
// called directly.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// MarkerFile is written into the corpus directory by the loader at the end
// of a successful run. Seeing it change clears the staleness latch. The dot
// prefix keeps it out of the corpus-file filter.
const MarkerFile = ".last_load"

// CorpusWatcher watches one directory of JSON-lines corpus files.
type CorpusWatcher struct {
	dir string
	log *logger.Logger
	fsw *fsnotify.Watcher

	mu    sync.RWMutex
	stale bool

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher over the given corpus directory.
func New(dir string, log *logger.Logger) (*CorpusWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &CorpusWatcher{
		dir:  dir,
		log:  log,
		fsw:  fsw,
		done: make(chan struct{}),
	}, nil
}

// Start consumes filesystem events until the context is canceled or the
// watcher is closed. Blocks; run it in a goroutine.
func (w *CorpusWatcher) Start(ctx context.Context) {
	w.wg.Add(1)
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("corpus watch error", "error", err)
		}
	}
}

// Stale reports whether a corpus file changed since the last MarkFresh.
func (w *CorpusWatcher) Stale() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stale
}

// MarkFresh clears the staleness latch, typically after a load run.
func (w *CorpusWatcher) MarkFresh() {
	w.mu.Lock()
	w.stale = false
	w.mu.Unlock()
}

// Close stops event processing and releases the watch.
func (w *CorpusWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	w.wg.Wait()
	return err
}

func (w *CorpusWatcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if filepath.Base(event.Name) == MarkerFile {
		if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && w.Stale() {
			w.MarkFresh()
			w.log.Info("load run completed, staleness cleared", "path", event.Name)
		}
		return
	}

	if !isCorpusFile(event.Name) {
		return
	}

	w.mu.Lock()
	first := !w.stale
	w.stale = true
	w.mu.Unlock()

	if first {
		w.log.Info("corpus changed on disk, loaded graph is stale",
			"path", event.Name, "op", event.Op.String())
	}
}

// isCorpusFile filters out editor temp files and anything that is not a
// JSON-lines dump.
func isCorpusFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, ".json")
}
