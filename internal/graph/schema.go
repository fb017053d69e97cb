package graph

import (
	"context"
	"fmt"
)

// deleteBatchSize bounds each DETACH DELETE chunk so Clear never builds a
// transaction large enough to exhaust the server's heap.
const deleteBatchSize = 10000

// fullTextIndexName is the Lucene-backed index behind catalog search.
const fullTextIndexName = "bookSearch"

var schemaStatements = []string{
	`CREATE CONSTRAINT book_id_unique IF NOT EXISTS FOR (b:Book) REQUIRE b.bookId IS UNIQUE`,
	`CREATE CONSTRAINT author_id_unique IF NOT EXISTS FOR (a:Author) REQUIRE a.authorId IS UNIQUE`,
	`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.userId IS UNIQUE`,
	`CREATE CONSTRAINT shelf_name_unique IF NOT EXISTS FOR (s:Shelf) REQUIRE s.name IS UNIQUE`,
	`CREATE CONSTRAINT series_id_unique IF NOT EXISTS FOR (s:Series) REQUIRE s.seriesId IS UNIQUE`,
	`CREATE CONSTRAINT genre_key_unique IF NOT EXISTS FOR (g:Genre) REQUIRE g.key IS UNIQUE`,
	`CREATE INDEX book_title IF NOT EXISTS FOR (b:Book) ON (b.title)`,
	`CREATE INDEX book_pub_year IF NOT EXISTS FOR (b:Book) ON (b.pubYear)`,
	`CREATE INDEX book_average_rating IF NOT EXISTS FOR (b:Book) ON (b.averageRating)`,
	`CREATE INDEX book_ratings_count IF NOT EXISTS FOR (b:Book) ON (b.ratingsCount)`,
	`CREATE INDEX book_genre IF NOT EXISTS FOR (b:Book) ON (b.genre)`,
}

// Setup creates uniqueness constraints and property indexes. Idempotent.
func (s *Neo4jStore) Setup(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := s.run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	s.log.Info("graph schema ready",
		"constraints", 6,
		"indexes", len(schemaStatements)-6)
	return nil
}

// Clear drops the full-text index and deletes every node in batches.
// Batching keeps each transaction bounded regardless of graph size.
func (s *Neo4jStore) Clear(ctx context.Context) error {
	if err := s.run(ctx, `DROP INDEX `+fullTextIndexName+` IF EXISTS`, nil); err != nil {
		return fmt.Errorf("drop full-text index: %w", err)
	}

	var total int64
	for {
		session := s.writeSession(ctx)
		result, err := session.Run(ctx,
			`MATCH (n) WITH n LIMIT $batch DETACH DELETE n`,
			map[string]any{"batch": deleteBatchSize})
		if err != nil {
			session.Close(ctx)
			return queryError(err)
		}
		summary, err := result.Consume(ctx)
		session.Close(ctx)
		if err != nil {
			return queryError(err)
		}

		deleted := summary.Counters().NodesDeleted()
		total += int64(deleted)
		if deleted == 0 {
			break
		}
	}

	s.log.Info("graph cleared", "nodes_deleted", total)
	return nil
}

// EnsureFullTextIndex creates the search index over book text fields.
func (s *Neo4jStore) EnsureFullTextIndex(ctx context.Context) error {
	query := `CREATE FULLTEXT INDEX ` + fullTextIndexName + ` IF NOT EXISTS
		FOR (b:Book) ON EACH [b.title, b.titleClean, b.description, b.publisher]`
	if err := s.run(ctx, query, nil); err != nil {
		return fmt.Errorf("create full-text index: %w", err)
	}
	return nil
}

// Counts reports per-label node counts and relationship totals.
func (s *Neo4jStore) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	for _, q := range []struct {
		dest  *int64
		query string
	}{
		{&counts.Books, `MATCH (b:Book) RETURN count(b)`},
		{&counts.Authors, `MATCH (a:Author) RETURN count(a)`},
		{&counts.Users, `MATCH (u:User) RETURN count(u)`},
		{&counts.Shelves, `MATCH (s:Shelf) RETURN count(s)`},
		{&counts.Series, `MATCH (s:Series) RETURN count(s)`},
		{&counts.Genres, `MATCH (g:Genre) RETURN count(g)`},
		{&counts.Similarities, `MATCH ()-[r:SIMILAR_TO]->() RETURN count(r)`},
		{&counts.Interactions, `MATCH ()-[r:INTERACTED]->() RETURN count(r)`},
		{&counts.Reviews, `MATCH ()-[r:REVIEWED]->() RETURN count(r)`},
	} {
		n, err := s.count(ctx, q.query, nil)
		if err != nil {
			return nil, err
		}
		*q.dest = n
	}
	return counts, nil
}
