// Package search maintains the Bleve typeahead index over the book catalog.
//
// Full catalog search runs against the graph's own full-text index; this
// package only serves the autocomplete path, where prefix and fuzzy queries
// need to come back in a few milliseconds without touching the graph.
package search

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

// mappingVersion is incremented whenever the index mapping changes.
// A mismatch on startup triggers an automatic rebuild.
const mappingVersion = "2"

// indexBatchSize chunks large loads so indexing never holds a whole genre
// in one batch.
const indexBatchSize = 500

// Index wraps a Bleve index with catalog-specific operations.
//
// Thread safety: all public methods are safe for concurrent use. The mutex
// protects against index corruption during Reset.
type Index struct {
	index bleve.Index
	path  string
	log   *logger.Logger
	mu    sync.RWMutex
}

// Options configures the typeahead index.
type Options struct {
	DataPath string
	Logger   *logger.Logger
}

// NewIndex creates or opens the typeahead index. A corrupted index or an
// outdated mapping version is removed and recreated empty; the next load
// run refills it.
func NewIndex(opts Options) (*Index, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	indexPath := filepath.Join(opts.DataPath, "typeahead.bleve")
	versionPath := filepath.Join(opts.DataPath, "typeahead.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			log.Info("typeahead index has no version file, will rebuild",
				"new_version", mappingVersion)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			log.Info("typeahead index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			log.Warn("failed to open existing typeahead index, will recreate",
				"path", indexPath,
				"error", err)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			log.Warn("failed to write typeahead version file", "error", writeErr)
		}
		log.Info("created typeahead index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		log.Info("opened typeahead index", "path", indexPath)
	}

	return &Index{
		index: index,
		path:  indexPath,
		log:   log,
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexBooks indexes a batch of books, chunked internally.
func (s *Index) IndexBooks(books []domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 0; i < len(books); i += indexBatchSize {
		end := min(i+indexBatchSize, len(books))

		batch := s.index.NewBatch()
		for _, b := range books[i:end] {
			if err := batch.Index(b.BookID, bookDocument(b)); err != nil {
				return fmt.Errorf("batch index %s: %w", b.BookID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// Reset drops the index and creates a fresh empty one. Called at the start
// of a load run so stale entries never survive a reload.
func (s *Index) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.index = index
	s.log.Info("reset typeahead index", "path", s.path)
	return nil
}

// DocumentCount returns the total number of indexed books.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// bookDocument maps a book onto the indexed field names.
func bookDocument(b domain.Book) map[string]any {
	return map[string]any{
		"title":         b.Title,
		"title_clean":   b.TitleClean,
		"publisher":     b.Publisher,
		"genre":         b.Genre,
		"pub_year":      b.PubYear,
		"ratings_count": b.RatingsCount,
	}
}
