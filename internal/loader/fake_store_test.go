package loader

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
)

// fakeStore records every write the loader makes, in call order.
type fakeStore struct {
	calls []string

	books        map[string]domain.Book
	authorships  []graph.Authorship
	seriesLinks  []graph.SeriesLink
	shelfLinks   []graph.ShelfLink
	similarities []graph.Similarity
	interactions []graph.Interaction
	reviews      []graph.ReviewLink
	authors      []domain.Author

	cleared        bool
	schemaReady    bool
	fullTextExists bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{books: make(map[string]domain.Book)}
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) Setup(context.Context) error {
	f.calls = append(f.calls, "setup")
	f.schemaReady = true
	return nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.calls = append(f.calls, "clear")
	f.cleared = true
	f.fullTextExists = false
	return nil
}

func (f *fakeStore) EnsureFullTextIndex(context.Context) error {
	f.calls = append(f.calls, "fulltext")
	f.fullTextExists = true
	return nil
}

func (f *fakeStore) Counts(context.Context) (*graph.Counts, error) {
	return &graph.Counts{
		Books:        int64(len(f.books)),
		Similarities: int64(len(f.similarities)),
		Interactions: int64(len(f.interactions)),
		Reviews:      int64(len(f.reviews)),
	}, nil
}

func (f *fakeStore) UpsertBooks(_ context.Context, _, _ string, books []domain.Book) error {
	f.calls = append(f.calls, "books")
	for _, b := range books {
		f.books[b.BookID] = b
	}
	return nil
}

func (f *fakeStore) UpsertAuthorships(_ context.Context, links []graph.Authorship) error {
	f.calls = append(f.calls, "authorships")
	f.authorships = append(f.authorships, links...)
	return nil
}

func (f *fakeStore) UpsertSeriesLinks(_ context.Context, links []graph.SeriesLink) error {
	f.calls = append(f.calls, "series")
	f.seriesLinks = append(f.seriesLinks, links...)
	return nil
}

func (f *fakeStore) UpsertShelfLinks(_ context.Context, links []graph.ShelfLink) error {
	f.calls = append(f.calls, "shelves")
	f.shelfLinks = append(f.shelfLinks, links...)
	return nil
}

func (f *fakeStore) UpsertSimilarities(_ context.Context, links []graph.Similarity) error {
	f.calls = append(f.calls, "similarities")
	f.similarities = append(f.similarities, links...)
	return nil
}

func (f *fakeStore) UpsertInteractions(_ context.Context, rows []graph.Interaction) error {
	f.calls = append(f.calls, "interactions")
	f.interactions = append(f.interactions, rows...)
	return nil
}

func (f *fakeStore) UpsertReviews(_ context.Context, rows []graph.ReviewLink) error {
	f.calls = append(f.calls, "reviews")
	f.reviews = append(f.reviews, rows...)
	return nil
}

func (f *fakeStore) UpdateAuthors(_ context.Context, authors []domain.Author) error {
	f.calls = append(f.calls, "author_meta")
	f.authors = append(f.authors, authors...)
	return nil
}

func (f *fakeStore) GetBook(context.Context, string) (*domain.BookDetail, error) {
	return nil, nil
}

func (f *fakeStore) ListBooks(context.Context, graph.ListBooksParams) ([]domain.Book, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) BookReviews(context.Context, string, domain.PageParams) ([]domain.Review, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) SimilarBooks(context.Context, string, int) ([]domain.Book, error) {
	return nil, nil
}

func (f *fakeStore) Search(context.Context, graph.SearchParams) ([]domain.SearchHit, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) RecommendGraph(context.Context, string, int) ([]domain.Recommendation, error) {
	return nil, nil
}

func (f *fakeStore) RecommendShelf(context.Context, string, int) ([]domain.Recommendation, error) {
	return nil, nil
}

func (f *fakeStore) RecommendCollaborative(context.Context, string, int) ([]domain.Recommendation, error) {
	return nil, nil
}

func (f *fakeStore) MoodBooks(context.Context, []string, string, int) ([]domain.Book, error) {
	return nil, nil
}

func (f *fakeStore) Genres(context.Context) ([]domain.Genre, error) { return nil, nil }

func (f *fakeStore) GenreBooks(context.Context, string, domain.PageParams) ([]domain.Book, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) TopShelves(context.Context, string, int) ([]domain.Shelf, error) {
	return nil, nil
}

func (f *fakeStore) ShelfBooks(context.Context, string, int) ([]graph.ShelfBook, error) {
	return nil, nil
}

func (f *fakeStore) Author(context.Context, string) (*domain.Author, error) { return nil, nil }

func (f *fakeStore) AuthorBooks(context.Context, string, domain.PageParams) ([]domain.Book, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) TopRaters(context.Context, string, int, int) ([]graph.Rater, error) {
	return nil, nil
}

var _ graph.Store = (*fakeStore)(nil)
