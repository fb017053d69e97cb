package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
)

// stubStore implements graph.Store with overridable function fields.
// Methods without an override return zero values.
type stubStore struct {
	pingFn         func(ctx context.Context) error
	countsFn       func(ctx context.Context) (*graph.Counts, error)
	getBookFn      func(ctx context.Context, bookID string) (*domain.BookDetail, error)
	listBooksFn    func(ctx context.Context, params graph.ListBooksParams) ([]domain.Book, int64, error)
	bookReviewsFn  func(ctx context.Context, bookID string, page domain.PageParams) ([]domain.Review, int64, error)
	similarFn      func(ctx context.Context, bookID string, limit int) ([]domain.Book, error)
	searchFn       func(ctx context.Context, params graph.SearchParams) ([]domain.SearchHit, int64, error)
	recGraphFn     func(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	recShelfFn     func(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	recCollabFn    func(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error)
	moodBooksFn    func(ctx context.Context, shelves []string, genre string, limit int) ([]domain.Book, error)
	genresFn       func(ctx context.Context) ([]domain.Genre, error)
	genreBooksFn   func(ctx context.Context, genreKey string, page domain.PageParams) ([]domain.Book, int64, error)
	topShelvesFn   func(ctx context.Context, genre string, limit int) ([]domain.Shelf, error)
	shelfBooksFn   func(ctx context.Context, shelfName string, limit int) ([]graph.ShelfBook, error)
	authorFn       func(ctx context.Context, authorID string) (*domain.Author, error)
	authorBooksFn  func(ctx context.Context, authorID string, page domain.PageParams) ([]domain.Book, int64, error)
	topRatersFn    func(ctx context.Context, bookID string, minRating, limit int) ([]graph.Rater, error)
}

var _ graph.Store = (*stubStore)(nil)

func (s *stubStore) Ping(ctx context.Context) error {
	if s.pingFn != nil {
		return s.pingFn(ctx)
	}
	return nil
}

func (s *stubStore) Setup(ctx context.Context) error              { return nil }
func (s *stubStore) Clear(ctx context.Context) error              { return nil }
func (s *stubStore) EnsureFullTextIndex(ctx context.Context) error { return nil }

func (s *stubStore) Counts(ctx context.Context) (*graph.Counts, error) {
	if s.countsFn != nil {
		return s.countsFn(ctx)
	}
	return &graph.Counts{}, nil
}

func (s *stubStore) UpsertBooks(ctx context.Context, genreKey, genreName string, books []domain.Book) error {
	return nil
}
func (s *stubStore) UpsertAuthorships(ctx context.Context, links []graph.Authorship) error { return nil }
func (s *stubStore) UpsertSeriesLinks(ctx context.Context, links []graph.SeriesLink) error { return nil }
func (s *stubStore) UpsertShelfLinks(ctx context.Context, links []graph.ShelfLink) error   { return nil }
func (s *stubStore) UpsertSimilarities(ctx context.Context, links []graph.Similarity) error {
	return nil
}
func (s *stubStore) UpsertInteractions(ctx context.Context, rows []graph.Interaction) error {
	return nil
}
func (s *stubStore) UpsertReviews(ctx context.Context, rows []graph.ReviewLink) error { return nil }
func (s *stubStore) UpdateAuthors(ctx context.Context, authors []domain.Author) error { return nil }

func (s *stubStore) GetBook(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	if s.getBookFn != nil {
		return s.getBookFn(ctx, bookID)
	}
	return &domain.BookDetail{Book: domain.Book{BookID: bookID}}, nil
}

func (s *stubStore) ListBooks(ctx context.Context, params graph.ListBooksParams) ([]domain.Book, int64, error) {
	if s.listBooksFn != nil {
		return s.listBooksFn(ctx, params)
	}
	return nil, 0, nil
}

func (s *stubStore) BookReviews(ctx context.Context, bookID string, page domain.PageParams) ([]domain.Review, int64, error) {
	if s.bookReviewsFn != nil {
		return s.bookReviewsFn(ctx, bookID, page)
	}
	return nil, 0, nil
}

func (s *stubStore) SimilarBooks(ctx context.Context, bookID string, limit int) ([]domain.Book, error) {
	if s.similarFn != nil {
		return s.similarFn(ctx, bookID, limit)
	}
	return nil, nil
}

func (s *stubStore) Search(ctx context.Context, params graph.SearchParams) ([]domain.SearchHit, int64, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, params)
	}
	return nil, 0, nil
}

func (s *stubStore) RecommendGraph(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	if s.recGraphFn != nil {
		return s.recGraphFn(ctx, bookID, limit)
	}
	return nil, nil
}

func (s *stubStore) RecommendShelf(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	if s.recShelfFn != nil {
		return s.recShelfFn(ctx, bookID, limit)
	}
	return nil, nil
}

func (s *stubStore) RecommendCollaborative(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	if s.recCollabFn != nil {
		return s.recCollabFn(ctx, bookID, limit)
	}
	return nil, nil
}

func (s *stubStore) MoodBooks(ctx context.Context, shelves []string, genre string, limit int) ([]domain.Book, error) {
	if s.moodBooksFn != nil {
		return s.moodBooksFn(ctx, shelves, genre, limit)
	}
	return nil, nil
}

func (s *stubStore) Genres(ctx context.Context) ([]domain.Genre, error) {
	if s.genresFn != nil {
		return s.genresFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) GenreBooks(ctx context.Context, genreKey string, page domain.PageParams) ([]domain.Book, int64, error) {
	if s.genreBooksFn != nil {
		return s.genreBooksFn(ctx, genreKey, page)
	}
	return nil, 0, nil
}

func (s *stubStore) TopShelves(ctx context.Context, genre string, limit int) ([]domain.Shelf, error) {
	if s.topShelvesFn != nil {
		return s.topShelvesFn(ctx, genre, limit)
	}
	return nil, nil
}

func (s *stubStore) ShelfBooks(ctx context.Context, shelfName string, limit int) ([]graph.ShelfBook, error) {
	if s.shelfBooksFn != nil {
		return s.shelfBooksFn(ctx, shelfName, limit)
	}
	return nil, nil
}

func (s *stubStore) Author(ctx context.Context, authorID string) (*domain.Author, error) {
	if s.authorFn != nil {
		return s.authorFn(ctx, authorID)
	}
	return &domain.Author{AuthorID: authorID}, nil
}

func (s *stubStore) AuthorBooks(ctx context.Context, authorID string, page domain.PageParams) ([]domain.Book, int64, error) {
	if s.authorBooksFn != nil {
		return s.authorBooksFn(ctx, authorID, page)
	}
	return nil, 0, nil
}

func (s *stubStore) TopRaters(ctx context.Context, bookID string, minRating, limit int) ([]graph.Rater, error) {
	if s.topRatersFn != nil {
		return s.topRatersFn(ctx, bookID, minRating, limit)
	}
	return nil, nil
}
