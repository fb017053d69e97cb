// Package graph persists the book catalog in a Neo4j property graph and
// serves the traversal queries behind discovery, search, and recommendations.
package graph

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

// Authorship links a book to one of its authors. Author nodes are created
// identity-only here; names arrive in a later metadata pass.
type Authorship struct {
	BookID   string
	AuthorID string
	Role     string
}

// SeriesLink places a book in a series.
type SeriesLink struct {
	BookID   string
	SeriesID string
}

// ShelfLink records how many readers shelved a book under a shelf name.
type ShelfLink struct {
	BookID string
	Name   string
	Count  int
}

// Similarity is a directed similar-to edge between two books.
type Similarity struct {
	FromID string
	ToID   string
}

// Interaction is a reader's rating of a book.
type Interaction struct {
	UserID    string
	BookID    string
	Rating    int
	IsRead    bool
	DateAdded string
}

// ReviewLink attaches a review to a book.
type ReviewLink struct {
	BookID string
	Review domain.Review
}

// Rater is a reader who rated a book, used by the visualization queries.
type Rater struct {
	UserID string
	Rating int
}

// ShelfBook is a book together with its shelve count on one specific shelf.
type ShelfBook struct {
	domain.Book
	ShelfCount int
}

// ListBooksParams filters and orders the catalog listing.
type ListBooksParams struct {
	Genre  string
	SortBy string // title, pub_year, average_rating, ratings_count
	Order  string // asc or desc
	Page   domain.PageParams
}

// SearchParams drives a full-text catalog search. Query must already be
// sanitized of Lucene syntax.
type SearchParams struct {
	Query     string
	MinRating float64
	MinYear   int
	MaxYear   int
	Genre     string
	Shelves   []string
	Page      domain.PageParams
}

// Counts summarizes graph contents after a load.
type Counts struct {
	Books        int64 `json:"books"`
	Authors      int64 `json:"authors"`
	Users        int64 `json:"users"`
	Shelves      int64 `json:"shelves"`
	Series       int64 `json:"series"`
	Genres       int64 `json:"genres"`
	Similarities int64 `json:"similarities"`
	Interactions int64 `json:"interactions"`
	Reviews      int64 `json:"reviews"`
}

// Store is the persistence boundary for the catalog graph. The ingestion
// pipeline drives the batch upserts; the discovery services drive the reads.
type Store interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Setup creates uniqueness constraints and property indexes. Idempotent.
	Setup(ctx context.Context) error

	// Clear drops the full-text index and deletes all nodes in batches.
	Clear(ctx context.Context) error

	// EnsureFullTextIndex creates the book full-text index. Called once all
	// book properties are in place, since the index covers description text.
	EnsureFullTextIndex(ctx context.Context) error

	// Counts reports per-label node counts and relationship totals.
	Counts(ctx context.Context) (*Counts, error)

	// Batch upserts used by the ingestion pipeline. All are idempotent:
	// re-running a load converges to the same graph.
	UpsertBooks(ctx context.Context, genreKey, genreName string, books []domain.Book) error
	UpsertAuthorships(ctx context.Context, links []Authorship) error
	UpsertSeriesLinks(ctx context.Context, links []SeriesLink) error
	UpsertShelfLinks(ctx context.Context, links []ShelfLink) error
	UpsertSimilarities(ctx context.Context, links []Similarity) error
	UpsertInteractions(ctx context.Context, rows []Interaction) error
	UpsertReviews(ctx context.Context, rows []ReviewLink) error

	// UpdateAuthors enriches existing author nodes with names and rating
	// metadata. Matches only; authors absent from the graph are ignored.
	UpdateAuthors(ctx context.Context, authors []domain.Author) error

	// Catalog reads.
	GetBook(ctx context.Context, bookID string) (*domain.BookDetail, error)
	ListBooks(ctx context.Context, params ListBooksParams) ([]domain.Book, int64, error)
	BookReviews(ctx context.Context, bookID string, page domain.PageParams) ([]domain.Review, int64, error)
	SimilarBooks(ctx context.Context, bookID string, limit int) ([]domain.Book, error)

	// Search runs a full-text query with optional attribute filters.
	Search(ctx context.Context, params SearchParams) ([]domain.SearchHit, int64, error)

	// Recommendation traversals. Each returns scored candidates excluding
	// the seed book itself.
	RecommendGraph(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	RecommendShelf(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	RecommendCollaborative(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)

	// MoodBooks finds books shelved under any of the given shelf names,
	// ranked by how many of the shelves they match.
	MoodBooks(ctx context.Context, shelves []string, genre string, limit int) ([]domain.Book, error)

	// Genre and shelf aggregations.
	Genres(ctx context.Context) ([]domain.Genre, error)
	GenreBooks(ctx context.Context, genreKey string, page domain.PageParams) ([]domain.Book, int64, error)
	TopShelves(ctx context.Context, genre string, limit int) ([]domain.Shelf, error)
	ShelfBooks(ctx context.Context, shelfName string, limit int) ([]ShelfBook, error)

	// Author reads.
	Author(ctx context.Context, authorID string) (*domain.Author, error)
	AuthorBooks(ctx context.Context, authorID string, page domain.PageParams) ([]domain.Book, int64, error)

	// TopRaters returns readers who rated the book at or above minRating,
	// highest ratings first.
	TopRaters(ctx context.Context, bookID string, minRating, limit int) ([]Rater, error)
}
