package graph

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

// UpsertBooks writes a batch of book nodes and their genre membership.
// MERGE on bookId makes re-loads converge instead of duplicating nodes.
func (s *Neo4jStore) UpsertBooks(ctx context.Context, genreKey, genreName string, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(books))
	for _, b := range books {
		batch = append(batch, map[string]any{
			"bookId":        b.BookID,
			"title":         b.Title,
			"titleClean":    b.TitleClean,
			"description":   b.Description,
			"averageRating": b.AverageRating,
			"ratingsCount":  b.RatingsCount,
			"numPages":      b.NumPages,
			"publisher":     b.Publisher,
			"pubYear":       b.PubYear,
			"imageUrl":      b.ImageURL,
			"url":           b.URL,
			"workId":        b.WorkID,
			"isbn":          b.ISBN,
			"isbn13":        b.ISBN13,
			"asin":          b.ASIN,
		})
	}

	query := `
		UNWIND $batch AS row
		MERGE (b:Book {bookId: row.bookId})
		SET b.title = row.title,
		    b.titleClean = row.titleClean,
		    b.description = row.description,
		    b.averageRating = row.averageRating,
		    b.ratingsCount = row.ratingsCount,
		    b.numPages = row.numPages,
		    b.publisher = row.publisher,
		    b.pubYear = row.pubYear,
		    b.imageUrl = row.imageUrl,
		    b.url = row.url,
		    b.workId = row.workId,
		    b.isbn = row.isbn,
		    b.isbn13 = row.isbn13,
		    b.asin = row.asin,
		    b.genre = $genreKey
		MERGE (g:Genre {key: $genreKey})
		SET g.name = $genreName
		MERGE (b)-[:BELONGS_TO]->(g)`

	return s.run(ctx, query, map[string]any{
		"batch":     batch,
		"genreKey":  genreKey,
		"genreName": genreName,
	})
}

// UpsertAuthorships links books to authors. Authors are created as bare
// identity nodes; UpdateAuthors fills in metadata later.
func (s *Neo4jStore) UpsertAuthorships(ctx context.Context, links []Authorship) error {
	if len(links) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(links))
	for _, l := range links {
		batch = append(batch, map[string]any{
			"bookId":   l.BookID,
			"authorId": l.AuthorID,
			"role":     l.Role,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (b:Book {bookId: row.bookId})
		MERGE (a:Author {authorId: row.authorId})
		MERGE (a)-[w:WROTE]->(b)
		SET w.role = row.role`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpsertSeriesLinks places books in their series.
func (s *Neo4jStore) UpsertSeriesLinks(ctx context.Context, links []SeriesLink) error {
	if len(links) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(links))
	for _, l := range links {
		batch = append(batch, map[string]any{
			"bookId":   l.BookID,
			"seriesId": l.SeriesID,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (b:Book {bookId: row.bookId})
		MERGE (s:Series {seriesId: row.seriesId})
		MERGE (b)-[:IN_SERIES]->(s)`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpsertShelfLinks attaches shelve counts to books.
func (s *Neo4jStore) UpsertShelfLinks(ctx context.Context, links []ShelfLink) error {
	if len(links) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(links))
	for _, l := range links {
		batch = append(batch, map[string]any{
			"bookId": l.BookID,
			"name":   l.Name,
			"count":  l.Count,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (b:Book {bookId: row.bookId})
		MERGE (s:Shelf {name: row.name})
		MERGE (b)-[r:SHELVED_AS]->(s)
		SET r.count = row.count`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpsertSimilarities writes similar-to edges. Both endpoints must already
// exist; edges referencing unknown books match nothing and are dropped.
func (s *Neo4jStore) UpsertSimilarities(ctx context.Context, links []Similarity) error {
	if len(links) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(links))
	for _, l := range links {
		batch = append(batch, map[string]any{
			"fromId": l.FromID,
			"toId":   l.ToID,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (a:Book {bookId: row.fromId})
		MATCH (b:Book {bookId: row.toId})
		MERGE (a)-[:SIMILAR_TO]->(b)`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpsertInteractions writes reader rating edges.
func (s *Neo4jStore) UpsertInteractions(ctx context.Context, rows []Interaction) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, map[string]any{
			"userId":    r.UserID,
			"bookId":    r.BookID,
			"rating":    r.Rating,
			"isRead":    r.IsRead,
			"dateAdded": r.DateAdded,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (b:Book {bookId: row.bookId})
		MERGE (u:User {userId: row.userId})
		MERGE (u)-[r:INTERACTED]->(b)
		SET r.rating = row.rating,
		    r.isRead = row.isRead,
		    r.dateAdded = row.dateAdded`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpsertReviews writes review edges between readers and books.
func (s *Neo4jStore) UpsertReviews(ctx context.Context, rows []ReviewLink) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, map[string]any{
			"bookId":    r.BookID,
			"reviewId":  r.Review.ReviewID,
			"userId":    r.Review.UserID,
			"rating":    r.Review.Rating,
			"text":      r.Review.Text,
			"nVotes":    r.Review.NVotes,
			"nComments": r.Review.NComments,
			"dateAdded": r.Review.DateAdded,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (b:Book {bookId: row.bookId})
		MERGE (u:User {userId: row.userId})
		MERGE (u)-[r:REVIEWED]->(b)
		SET r.reviewId = row.reviewId,
		    r.rating = row.rating,
		    r.text = row.text,
		    r.nVotes = row.nVotes,
		    r.nComments = row.nComments,
		    r.dateAdded = row.dateAdded`

	return s.run(ctx, query, map[string]any{"batch": batch})
}

// UpdateAuthors enriches author nodes already referenced by loaded books.
// MATCH instead of MERGE so the metadata pass never creates orphan authors.
func (s *Neo4jStore) UpdateAuthors(ctx context.Context, authors []domain.Author) error {
	if len(authors) == 0 {
		return nil
	}

	batch := make([]map[string]any, 0, len(authors))
	for _, a := range authors {
		batch = append(batch, map[string]any{
			"authorId":      a.AuthorID,
			"name":          a.Name,
			"averageRating": a.AverageRating,
			"ratingsCount":  a.RatingsCount,
		})
	}

	query := `
		UNWIND $batch AS row
		MATCH (a:Author {authorId: row.authorId})
		SET a.name = row.name,
		    a.averageRating = row.averageRating,
		    a.ratingsCount = row.ratingsCount`

	return s.run(ctx, query, map[string]any{"batch": batch})
}
