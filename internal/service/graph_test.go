package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

type stubRecommender struct {
	recs []domain.Recommendation
	err  error
}

func (s *stubRecommender) Recommend(ctx context.Context, bookID string, strategy domain.Strategy, limit int) ([]domain.Recommendation, error) {
	return s.recs, s.err
}

func neighborhoodStore() *stubStore {
	return &stubStore{
		getBookFn: func(ctx context.Context, bookID string) (*domain.BookDetail, error) {
			return &domain.BookDetail{
				Book: domain.Book{BookID: bookID, Title: "Center"},
				Authors: []domain.AuthorRef{
					{AuthorID: "a1", Name: "Ann Author"},
				},
				Shelves:   []domain.Shelf{{Name: "fantasy", Count: 40}},
				SeriesIDs: []string{"s1"},
			}, nil
		},
		similarFn: func(ctx context.Context, bookID string, limit int) ([]domain.Book, error) {
			if bookID == "b1" {
				return []domain.Book{{BookID: "b2", Title: "Near"}}, nil
			}
			return []domain.Book{{BookID: "b3", Title: "Far"}}, nil
		},
		topRatersFn: func(ctx context.Context, bookID string, minRating, limit int) ([]graph.Rater, error) {
			return []graph.Rater{{UserID: "u1", Rating: 5}}, nil
		},
	}
}

func nodeIDs(g *domain.Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestGraphService_BookNeighborhood_DepthOne(t *testing.T) {
	svc := NewGraphService(neighborhoodStore(), &stubRecommender{}, logger.Discard())

	g, err := svc.BookNeighborhood(context.Background(), "b1", NeighborhoodOptions{Depth: 1})
	require.NoError(t, err)

	ids := nodeIDs(g)
	assert.Contains(t, ids, "book_b1")
	assert.Contains(t, ids, "author_a1")
	assert.Contains(t, ids, "shelf_fantasy")
	assert.Contains(t, ids, "series_s1")
	assert.Contains(t, ids, "book_b2")
	assert.NotContains(t, ids, "book_b3")
	assert.NotContains(t, ids, "user_u1")
}

func TestGraphService_BookNeighborhood_SecondHopAndReaders(t *testing.T) {
	svc := NewGraphService(neighborhoodStore(), &stubRecommender{}, logger.Discard())

	g, err := svc.BookNeighborhood(context.Background(), "b1", NeighborhoodOptions{Depth: 2, IncludeReaders: true})
	require.NoError(t, err)

	ids := nodeIDs(g)
	assert.Contains(t, ids, "book_b3")
	assert.Contains(t, ids, "user_u1")

	var raterEdge *domain.GraphEdge
	for i := range g.Edges {
		if g.Edges[i].Source == "user_u1" {
			raterEdge = &g.Edges[i]
		}
	}
	require.NotNil(t, raterEdge)
	assert.Equal(t, "book_b1", raterEdge.Target)
	assert.Equal(t, "INTERACTED", raterEdge.Type)
}

func TestGraphService_BookNeighborhood_NoDuplicateNodes(t *testing.T) {
	store := neighborhoodStore()
	// second hop leads straight back to the center
	store.similarFn = func(ctx context.Context, bookID string, limit int) ([]domain.Book, error) {
		if bookID == "b1" {
			return []domain.Book{{BookID: "b2"}}, nil
		}
		return []domain.Book{{BookID: "b1"}, {BookID: "b2"}}, nil
	}
	svc := NewGraphService(store, &stubRecommender{}, logger.Discard())

	g, err := svc.BookNeighborhood(context.Background(), "b1", NeighborhoodOptions{Depth: 3})
	require.NoError(t, err)

	seen := map[string]int{}
	for _, n := range g.Nodes {
		seen[n.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "node %s duplicated", id)
	}
}

func TestGraphService_AuthorGraph(t *testing.T) {
	store := &stubStore{
		authorFn: func(ctx context.Context, authorID string) (*domain.Author, error) {
			return &domain.Author{AuthorID: authorID, Name: "Ann Author"}, nil
		},
		authorBooksFn: func(ctx context.Context, authorID string, page domain.PageParams) ([]domain.Book, int64, error) {
			return []domain.Book{{BookID: "b1", Title: "One"}, {BookID: "b2", Title: "Two"}}, 2, nil
		},
	}
	svc := NewGraphService(store, &stubRecommender{}, logger.Discard())

	g, err := svc.AuthorGraph(context.Background(), "a1", 0)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "author_a1", g.Nodes[0].ID)
	assert.Equal(t, domain.ColorAuthor, g.Nodes[0].Color)
	require.Len(t, g.Edges, 2)
	assert.Equal(t, "WROTE", g.Edges[0].Type)
}

func TestGraphService_ShelfGraph(t *testing.T) {
	store := &stubStore{
		shelfBooksFn: func(ctx context.Context, shelfName string, limit int) ([]graph.ShelfBook, error) {
			return []graph.ShelfBook{
				{Book: domain.Book{BookID: "b1", Title: "One"}, ShelfCount: 12},
			}, nil
		},
	}
	svc := NewGraphService(store, &stubRecommender{}, logger.Discard())

	g, err := svc.ShelfGraph(context.Background(), "fantasy", 10)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "shelf_fantasy", g.Nodes[0].ID)
	assert.Equal(t, domain.ColorShelf, g.Nodes[0].Color)
	assert.Equal(t, "book_b1", g.Nodes[1].ID)
}

func TestGraphService_RecommendationGraph_SizesByScore(t *testing.T) {
	recs := &stubRecommender{
		recs: []domain.Recommendation{
			{Book: domain.Book{BookID: "b2", Title: "High"}, Score: 1.0},
			{Book: domain.Book{BookID: "b3", Title: "Low"}, Score: 0.2},
		},
	}
	svc := NewGraphService(neighborhoodStore(), recs, logger.Discard())

	g, err := svc.RecommendationGraph(context.Background(), "b1", 10)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	assert.Greater(t, g.Nodes[1].Size, g.Nodes[2].Size)
	for _, e := range g.Edges {
		assert.Equal(t, "RECOMMENDED", e.Type)
		assert.Equal(t, "book_b1", e.Source)
	}
}
