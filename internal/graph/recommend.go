package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

// minSharedShelves is the overlap floor for shelf recommendations. One or
// two shared shelves is mostly noise on a corpus where popular shelf names
// are near-universal.
const minSharedShelves = 3

// minCoRating is the rating floor on both sides of a collaborative match.
const minCoRating = 4

// RecommendGraph walks similar-to edges up to two hops out and scores each
// candidate by the number of distinct paths reaching it.
func (s *Neo4jStore) RecommendGraph(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	query := `
		MATCH (:Book {bookId: $bookId})-[:SIMILAR_TO*1..2]->(rec:Book)
		WHERE rec.bookId <> $bookId
		WITH rec, count(*) AS paths
		RETURN rec, paths AS score
		ORDER BY paths DESC, rec.ratingsCount DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{"bookId": bookID, "limit": limit})
	if err != nil {
		return nil, err
	}
	return recommendationsFromRecords(records, domain.StrategyGraph), nil
}

const recommendShelfQuery = `
	MATCH (:Book {bookId: $bookId})-[:SHELVED_AS]->(s:Shelf)<-[:SHELVED_AS]-(rec:Book)
	WHERE rec.bookId <> $bookId
	WITH rec, count(DISTINCT s) AS sharedShelves
	WHERE sharedShelves >= $minShared
	RETURN rec, sharedShelves AS score
	ORDER BY sharedShelves DESC, rec.ratingsCount DESC
	LIMIT $limit`

// RecommendShelf scores candidates by the number of shelves they share with
// the seed book, requiring at least minSharedShelves.
func (s *Neo4jStore) RecommendShelf(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	records, err := s.collect(ctx, recommendShelfQuery, map[string]any{
		"bookId":    bookID,
		"minShared": minSharedShelves,
		"limit":     limit,
	})
	if err != nil {
		return nil, err
	}
	return recommendationsFromRecords(records, domain.StrategyShelf), nil
}

// RecommendCollaborative scores candidates by the number of readers who
// rated both the seed and the candidate highly.
func (s *Neo4jStore) RecommendCollaborative(ctx context.Context, bookID string, limit int) ([]domain.Recommendation, error) {
	query := `
		MATCH (:Book {bookId: $bookId})<-[i1:INTERACTED]-(u:User)-[i2:INTERACTED]->(rec:Book)
		WHERE rec.bookId <> $bookId AND i1.rating >= $minRating AND i2.rating >= $minRating
		WITH rec, count(DISTINCT u) AS commonUsers
		RETURN rec, commonUsers AS score
		ORDER BY commonUsers DESC, rec.averageRating DESC
		LIMIT $limit`

	records, err := s.collect(ctx, query, map[string]any{
		"bookId":    bookID,
		"minRating": minCoRating,
		"limit":     limit,
	})
	if err != nil {
		return nil, err
	}
	return recommendationsFromRecords(records, domain.StrategyCollaborative), nil
}

func recommendationsFromRecords(records []*neo4j.Record, strategy domain.Strategy) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0, len(records))
	for _, rec := range records {
		book, ok := recBook(rec, "rec")
		if !ok {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Book:     book,
			Score:    recFloat(rec, "score"),
			Strategy: strategy,
		})
	}
	return recs
}
