package loader

import (
	"context"
	"fmt"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/corpus"
	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

const (
	// maxDescriptionLen bounds stored description text.
	maxDescriptionLen = 2000
	// maxShelvesPerBook keeps only the first N shelves that survive
	// filtering, in source order. The dumps list shelves by popularity, so
	// source order is already the ranking we want.
	maxShelvesPerBook = 20
	// minShelfCount drops shelves only one reader ever used.
	minShelfCount = 2
)

// organizationalShelves are shelf names that describe a reader's
// bookkeeping rather than the book itself. They dominate shelve counts on
// every popular book and would drown out real signals.
var organizationalShelves = map[string]struct{}{
	"to-read": {}, "currently-reading": {}, "owned": {}, "books-i-own": {},
	"owned-books": {}, "i-own": {}, "my-books": {}, "my-library": {},
	"have": {}, "library": {}, "kindle": {}, "ebooks": {}, "ebook": {},
	"e-book": {}, "to-buy": {}, "wish-list": {}, "wishlist": {},
	"default": {}, "favorites": {}, "favourites": {}, "re-read": {},
	"re-reads": {},
}

// SearchIndexer receives loaded books for the typeahead index.
type SearchIndexer interface {
	IndexBooks(books []domain.Book) error
}

// GenreStats summarizes one genre's book load.
type GenreStats struct {
	Genre        string `json:"genre"`
	Scanned      int    `json:"scanned"`
	Malformed    int    `json:"malformed"`
	Books        int    `json:"books"`
	Authorships  int    `json:"authorships"`
	SeriesLinks  int    `json:"series_links"`
	ShelfLinks   int    `json:"shelf_links"`
	Similarities int    `json:"similarities"`
	Interactions int    `json:"interactions"`
	Reviews      int    `json:"reviews"`
}

// BookLoader loads one genre's book dump into the graph.
type BookLoader struct {
	store      graph.Store
	index      SearchIndexer
	log        *logger.Logger
	batchSize  int
	subsetSize int
}

// NewBookLoader creates a book loader.
func NewBookLoader(store graph.Store, index SearchIndexer, batchSize, subsetSize int, log *logger.Logger) *BookLoader {
	return &BookLoader{
		store:      store,
		index:      index,
		log:        log,
		batchSize:  batchSize,
		subsetSize: subsetSize,
	}
}

// LoadGenre runs the two-pass load for one genre and returns its stats plus
// the set of selected book IDs, which scopes the interaction and review
// loads that follow.
func (l *BookLoader) LoadGenre(ctx context.Context, genre config.GenreConfig, dataDir string) (*GenreStats, map[string]struct{}, error) {
	reader := corpus.NewReader(genre.BooksPath(dataDir), l.log)
	stats := &GenreStats{Genre: genre.Key}

	// Selection pass: find the most-rated books without holding records.
	selector := NewSelector(l.subsetSize)
	if _, err := reader.Scan(ctx, func(rec corpus.Record) error {
		selector.Offer(rec.Str("book_id"), rec.Int64("ratings_count"))
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("select books for genre %s: %w", genre.Key, err)
	}
	selected := selector.Selected()

	l.log.Info("selected book subset",
		"genre", genre.Key,
		"selected", len(selected),
		"subset_size", l.subsetSize)

	// Load pass: materialize selected books and collect their edges.
	// Edges are buffered and written stage by stage after all book nodes
	// exist, since relationship writes MATCH on their endpoints.
	var (
		books        []domain.Book
		authorships  []graph.Authorship
		seriesLinks  []graph.SeriesLink
		shelfLinks   []graph.ShelfLink
		similarities []graph.Similarity
	)

	flushBooks := func() error {
		if len(books) == 0 {
			return nil
		}
		if err := l.store.UpsertBooks(ctx, genre.Key, genre.Name, books); err != nil {
			return err
		}
		if l.index != nil {
			if err := l.index.IndexBooks(books); err != nil {
				return err
			}
		}
		stats.Books += len(books)
		books = books[:0]
		return nil
	}

	scan, err := reader.Scan(ctx, func(rec corpus.Record) error {
		bookID := rec.Str("book_id")
		if _, ok := selected[bookID]; !ok {
			return nil
		}

		book := bookFromRecord(rec)
		book.Genre = genre.Key
		books = append(books, book)
		if len(books) >= l.batchSize {
			if err := flushBooks(); err != nil {
				return err
			}
		}

		for _, a := range rec.List("authors") {
			authorID := a.Str("author_id")
			if authorID == "" {
				continue
			}
			authorships = append(authorships, graph.Authorship{
				BookID:   bookID,
				AuthorID: authorID,
				Role:     a.Str("role"),
			})
		}

		for _, seriesID := range rec.Strings("series") {
			seriesLinks = append(seriesLinks, graph.SeriesLink{
				BookID:   bookID,
				SeriesID: seriesID,
			})
		}

		for _, shelf := range filterShelves(rec.List("popular_shelves")) {
			shelfLinks = append(shelfLinks, graph.ShelfLink{
				BookID: bookID,
				Name:   shelf.Name,
				Count:  shelf.Count,
			})
		}

		for _, simID := range rec.Strings("similar_books") {
			similarities = append(similarities, graph.Similarity{
				FromID: bookID,
				ToID:   simID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load books for genre %s: %w", genre.Key, err)
	}
	stats.Scanned = scan.Lines
	stats.Malformed = scan.Malformed

	if err := flushBooks(); err != nil {
		return nil, nil, fmt.Errorf("flush books for genre %s: %w", genre.Key, err)
	}

	// Similarity edges only make sense between books that both survived
	// selection; the rest would MATCH nothing anyway.
	kept := similarities[:0]
	for _, sim := range similarities {
		if _, ok := selected[sim.ToID]; ok {
			kept = append(kept, sim)
		}
	}
	similarities = kept

	if err := upsertBatched(ctx, l.batchSize, authorships, l.store.UpsertAuthorships); err != nil {
		return nil, nil, fmt.Errorf("write authorships for genre %s: %w", genre.Key, err)
	}
	if err := upsertBatched(ctx, l.batchSize, seriesLinks, l.store.UpsertSeriesLinks); err != nil {
		return nil, nil, fmt.Errorf("write series links for genre %s: %w", genre.Key, err)
	}
	if err := upsertBatched(ctx, l.batchSize, shelfLinks, l.store.UpsertShelfLinks); err != nil {
		return nil, nil, fmt.Errorf("write shelf links for genre %s: %w", genre.Key, err)
	}
	if err := upsertBatched(ctx, l.batchSize, similarities, l.store.UpsertSimilarities); err != nil {
		return nil, nil, fmt.Errorf("write similarities for genre %s: %w", genre.Key, err)
	}

	stats.Authorships = len(authorships)
	stats.SeriesLinks = len(seriesLinks)
	stats.ShelfLinks = len(shelfLinks)
	stats.Similarities = len(similarities)

	return stats, selected, nil
}

// upsertBatched writes rows through fn in batchSize chunks.
func upsertBatched[T any](ctx context.Context, batchSize int, rows []T, fn func(context.Context, []T) error) error {
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if err := fn(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// bookFromRecord maps one corpus line onto the book node shape.
func bookFromRecord(rec corpus.Record) domain.Book {
	return domain.Book{
		BookID:        rec.Str("book_id"),
		Title:         rec.Str("title"),
		TitleClean:    rec.Str("title_without_series"),
		Description:   truncate(cleanDescription(rec.Str("description")), maxDescriptionLen),
		AverageRating: rec.Float("average_rating"),
		RatingsCount:  rec.Int64("ratings_count"),
		NumPages:      rec.Int("num_pages"),
		Publisher:     rec.Str("publisher"),
		PubYear:       rec.Int("publication_year"),
		ImageURL:      rec.Str("image_url"),
		URL:           rec.Str("url"),
		WorkID:        rec.Str("work_id"),
		ISBN:          rec.Str("isbn"),
		ISBN13:        rec.Str("isbn13"),
		ASIN:          rec.Str("asin"),
	}
}

// filterShelves drops organizational and single-reader shelves, keeping the
// first maxShelvesPerBook survivors in source order.
func filterShelves(raw []corpus.Record) []domain.Shelf {
	var out []domain.Shelf
	for _, shelf := range raw {
		name := shelf.Str("name")
		count := shelf.Int("count")
		if name == "" || count < minShelfCount {
			continue
		}
		if _, ok := organizationalShelves[name]; ok {
			continue
		}
		out = append(out, domain.Shelf{Name: name, Count: count})
		if len(out) == maxShelvesPerBook {
			break
		}
	}
	return out
}
