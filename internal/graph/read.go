package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/errors"
)

// sortFields whitelists catalog sort keys so user input never reaches the
// query string directly.
var sortFields = map[string]string{
	"title":          "b.title",
	"pub_year":       "b.pubYear",
	"average_rating": "b.averageRating",
	"ratings_count":  "b.ratingsCount",
}

// GetBook loads a book with its authors, shelves, and series memberships.
func (s *Neo4jStore) GetBook(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	query := `
		MATCH (b:Book {bookId: $bookId})
		OPTIONAL MATCH (a:Author)-[w:WROTE]->(b)
		OPTIONAL MATCH (b)-[sr:SHELVED_AS]->(s:Shelf)
		OPTIONAL MATCH (b)-[:IN_SERIES]->(se:Series)
		RETURN b,
		       collect(DISTINCT {authorId: a.authorId, name: a.name, role: w.role}) AS authors,
		       collect(DISTINCT {name: s.name, count: sr.count}) AS shelves,
		       collect(DISTINCT se.seriesId) AS seriesIds`

	records, err := s.collect(ctx, query, map[string]any{"bookId": bookID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound("book not found: " + bookID)
	}

	rec := records[0]
	book, ok := recBook(rec, "b")
	if !ok {
		return nil, errors.Internal("unexpected result shape for book " + bookID)
	}

	detail := &domain.BookDetail{
		Book:      book,
		Authors:   []domain.AuthorRef{},
		Shelves:   []domain.Shelf{},
		SeriesIDs: recStrings(rec, "seriesIds"),
	}
	if detail.SeriesIDs == nil {
		detail.SeriesIDs = []string{}
	}

	for _, m := range recMaps(rec, "authors") {
		id := propStr(m, "authorId")
		if id == "" {
			continue
		}
		detail.Authors = append(detail.Authors, domain.AuthorRef{
			AuthorID: id,
			Name:     propStr(m, "name"),
			Role:     propStr(m, "role"),
		})
	}

	for _, m := range recMaps(rec, "shelves") {
		name := propStr(m, "name")
		if name == "" {
			continue
		}
		detail.Shelves = append(detail.Shelves, domain.Shelf{
			Name:  name,
			Count: int(propInt64(m, "count")),
		})
	}
	sort.SliceStable(detail.Shelves, func(i, j int) bool {
		return detail.Shelves[i].Count > detail.Shelves[j].Count
	})

	return detail, nil
}

// ListBooks pages through the catalog with optional genre filter and sort.
func (s *Neo4jStore) ListBooks(ctx context.Context, params ListBooksParams) ([]domain.Book, int64, error) {
	field, ok := sortFields[params.SortBy]
	if !ok {
		field = "b.ratingsCount"
	}
	order := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		order = "ASC"
	}

	where := ""
	args := map[string]any{
		"skip":  params.Page.Offset(),
		"limit": params.Page.Size,
	}
	if params.Genre != "" {
		where = "WHERE b.genre = $genre"
		args["genre"] = params.Genre
	}

	total, err := s.count(ctx, `MATCH (b:Book) `+where+` RETURN count(b)`, args)
	if err != nil {
		return nil, 0, err
	}

	query := `MATCH (b:Book) ` + where + `
		RETURN b
		ORDER BY ` + field + ` ` + order + `
		SKIP $skip LIMIT $limit`

	records, err := s.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return booksFromRecords(records, "b"), total, nil
}

// BookReviews pages a book's reviews, most-voted first.
func (s *Neo4jStore) BookReviews(ctx context.Context, bookID string, page domain.PageParams) ([]domain.Review, int64, error) {
	args := map[string]any{
		"bookId": bookID,
		"skip":   page.Offset(),
		"limit":  page.Size,
	}

	total, err := s.count(ctx,
		`MATCH (:User)-[r:REVIEWED]->(:Book {bookId: $bookId}) RETURN count(r)`, args)
	if err != nil {
		return nil, 0, err
	}

	query := `
		MATCH (u:User)-[r:REVIEWED]->(b:Book {bookId: $bookId})
		RETURN r.reviewId AS reviewId, u.userId AS userId, r.rating AS rating,
		       r.text AS text, r.nVotes AS nVotes, r.nComments AS nComments,
		       r.dateAdded AS dateAdded
		ORDER BY r.nVotes DESC
		SKIP $skip LIMIT $limit`

	records, err := s.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	reviews := make([]domain.Review, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, domain.Review{
			ReviewID:  recStr(rec, "reviewId"),
			UserID:    recStr(rec, "userId"),
			Rating:    recInt(rec, "rating"),
			Text:      recStr(rec, "text"),
			NVotes:    recInt(rec, "nVotes"),
			NComments: recInt(rec, "nComments"),
			DateAdded: recStr(rec, "dateAdded"),
		})
	}
	return reviews, total, nil
}

// SimilarBooks returns direct similar-to neighbors, most-rated first.
func (s *Neo4jStore) SimilarBooks(ctx context.Context, bookID string, limit int) ([]domain.Book, error) {
	query := `
		MATCH (:Book {bookId: $bookId})-[:SIMILAR_TO]->(rec:Book)
		RETURN rec
		ORDER BY rec.ratingsCount DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{"bookId": bookID, "limit": limit})
	if err != nil {
		return nil, err
	}
	return booksFromRecords(records, "rec"), nil
}

// Search runs the full-text index query with optional attribute filters.
func (s *Neo4jStore) Search(ctx context.Context, params SearchParams) ([]domain.SearchHit, int64, error) {
	var filters []string
	args := map[string]any{
		"query": params.Query,
		"skip":  params.Page.Offset(),
		"limit": params.Page.Size,
	}
	if params.MinRating > 0 {
		filters = append(filters, "b.averageRating >= $minRating")
		args["minRating"] = params.MinRating
	}
	if params.MinYear > 0 {
		filters = append(filters, "b.pubYear >= $minYear")
		args["minYear"] = params.MinYear
	}
	if params.MaxYear > 0 {
		filters = append(filters, "b.pubYear <= $maxYear")
		args["maxYear"] = params.MaxYear
	}
	if params.Genre != "" {
		filters = append(filters, "b.genre = $genre")
		args["genre"] = params.Genre
	}
	if len(params.Shelves) > 0 {
		filters = append(filters,
			"EXISTS { MATCH (b)-[:SHELVED_AS]->(sh:Shelf) WHERE sh.name IN $shelves }")
		args["shelves"] = params.Shelves
	}

	where := ""
	if len(filters) > 0 {
		where = "WHERE " + strings.Join(filters, " AND ")
	}

	prefix := `CALL db.index.fulltext.queryNodes('` + fullTextIndexName + `', $query)
		YIELD node AS b, score ` + where

	total, err := s.count(ctx, prefix+` RETURN count(b)`, args)
	if err != nil {
		return nil, 0, err
	}

	records, err := s.collect(ctx, prefix+`
		RETURN b, score
		ORDER BY score DESC
		SKIP $skip LIMIT $limit`, args)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]domain.SearchHit, 0, len(records))
	for _, rec := range records {
		book, ok := recBook(rec, "b")
		if !ok {
			continue
		}
		hits = append(hits, domain.SearchHit{Book: book, Score: recFloat(rec, "score")})
	}
	return hits, total, nil
}

// MoodBooks ranks books by how many of the mood's shelves they carry,
// then by how heavily they are shelved and rated.
func (s *Neo4jStore) MoodBooks(ctx context.Context, shelves []string, genre string, limit int) ([]domain.Book, error) {
	query := `
		MATCH (b:Book)-[r:SHELVED_AS]->(s:Shelf)
		WHERE s.name IN $shelves AND ($genre = '' OR b.genre = $genre)
		WITH b, count(DISTINCT s) AS shelfMatches, sum(r.count) AS totalShelfCount
		RETURN b
		ORDER BY shelfMatches DESC, totalShelfCount DESC, b.ratingsCount DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{
		"shelves": shelves,
		"genre":   genre,
		"limit":   limit,
	})
	if err != nil {
		return nil, err
	}
	return booksFromRecords(records, "b"), nil
}

// Genres lists loaded corpus segments with their book counts.
func (s *Neo4jStore) Genres(ctx context.Context) ([]domain.Genre, error) {
	query := `
		MATCH (g:Genre)<-[:BELONGS_TO]-(b:Book)
		RETURN g.key AS key, g.name AS name, count(b) AS bookCount
		ORDER BY bookCount DESC`

	records, err := s.collect(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(records))
	for _, rec := range records {
		genres = append(genres, domain.Genre{
			Key:       recStr(rec, "key"),
			Name:      recStr(rec, "name"),
			BookCount: recInt64(rec, "bookCount"),
		})
	}
	return genres, nil
}

// GenreBooks pages one genre's books, most-rated first.
func (s *Neo4jStore) GenreBooks(ctx context.Context, genreKey string, page domain.PageParams) ([]domain.Book, int64, error) {
	args := map[string]any{
		"genre": genreKey,
		"skip":  page.Offset(),
		"limit": page.Size,
	}

	total, err := s.count(ctx, `MATCH (b:Book {genre: $genre}) RETURN count(b)`, args)
	if err != nil {
		return nil, 0, err
	}

	query := `
		MATCH (b:Book {genre: $genre})
		RETURN b
		ORDER BY b.ratingsCount DESC
		SKIP $skip LIMIT $limit`

	records, err := s.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return booksFromRecords(records, "b"), total, nil
}

// TopShelves aggregates shelve counts across the catalog, optionally
// restricted to one genre.
func (s *Neo4jStore) TopShelves(ctx context.Context, genre string, limit int) ([]domain.Shelf, error) {
	query := `
		MATCH (b:Book)-[r:SHELVED_AS]->(s:Shelf)
		WHERE $genre = '' OR b.genre = $genre
		RETURN s.name AS name, sum(r.count) AS total
		ORDER BY total DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{"genre": genre, "limit": limit})
	if err != nil {
		return nil, err
	}

	shelves := make([]domain.Shelf, 0, len(records))
	for _, rec := range records {
		shelves = append(shelves, domain.Shelf{
			Name:  recStr(rec, "name"),
			Count: recInt(rec, "total"),
		})
	}
	return shelves, nil
}

// ShelfBooks returns the books most shelved under one shelf name.
func (s *Neo4jStore) ShelfBooks(ctx context.Context, shelfName string, limit int) ([]ShelfBook, error) {
	query := `
		MATCH (b:Book)-[r:SHELVED_AS]->(:Shelf {name: $name})
		RETURN b, r.count AS shelfCount
		ORDER BY r.count DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{"name": shelfName, "limit": limit})
	if err != nil {
		return nil, err
	}

	books := make([]ShelfBook, 0, len(records))
	for _, rec := range records {
		book, ok := recBook(rec, "b")
		if !ok {
			continue
		}
		books = append(books, ShelfBook{
			Book:       book,
			ShelfCount: recInt(rec, "shelfCount"),
		})
	}
	return books, nil
}

// Author loads one author by ID.
func (s *Neo4jStore) Author(ctx context.Context, authorID string) (*domain.Author, error) {
	query := `
		MATCH (a:Author {authorId: $authorId})
		RETURN a.authorId AS authorId, a.name AS name,
		       a.averageRating AS averageRating, a.ratingsCount AS ratingsCount`

	records, err := s.collect(ctx, query, map[string]any{"authorId": authorID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NotFound("author not found: " + authorID)
	}

	rec := records[0]
	return &domain.Author{
		AuthorID:      recStr(rec, "authorId"),
		Name:          recStr(rec, "name"),
		AverageRating: recFloat(rec, "averageRating"),
		RatingsCount:  recInt64(rec, "ratingsCount"),
	}, nil
}

// AuthorBooks pages an author's books, most-rated first.
func (s *Neo4jStore) AuthorBooks(ctx context.Context, authorID string, page domain.PageParams) ([]domain.Book, int64, error) {
	args := map[string]any{
		"authorId": authorID,
		"skip":     page.Offset(),
		"limit":    page.Size,
	}

	total, err := s.count(ctx,
		`MATCH (:Author {authorId: $authorId})-[:WROTE]->(b:Book) RETURN count(b)`, args)
	if err != nil {
		return nil, 0, err
	}

	query := `
		MATCH (:Author {authorId: $authorId})-[:WROTE]->(b:Book)
		RETURN b
		ORDER BY b.ratingsCount DESC
		SKIP $skip LIMIT $limit`

	records, err := s.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return booksFromRecords(records, "b"), total, nil
}

// TopRaters returns readers who rated the book at or above minRating.
func (s *Neo4jStore) TopRaters(ctx context.Context, bookID string, minRating, limit int) ([]Rater, error) {
	query := `
		MATCH (u:User)-[r:INTERACTED]->(:Book {bookId: $bookId})
		WHERE r.rating >= $minRating
		RETURN u.userId AS userId, r.rating AS rating
		ORDER BY r.rating DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{
		"bookId":    bookID,
		"minRating": minRating,
		"limit":     limit,
	})
	if err != nil {
		return nil, err
	}

	raters := make([]Rater, 0, len(records))
	for _, rec := range records {
		raters = append(raters, Rater{
			UserID: recStr(rec, "userId"),
			Rating: recInt(rec, "rating"),
		})
	}
	return raters, nil
}

func booksFromRecords(records []*neo4j.Record, key string) []domain.Book {
	books := make([]domain.Book, 0, len(records))
	for _, rec := range records {
		if book, ok := recBook(rec, key); ok {
			books = append(books, book)
		}
	}
	return books
}
