package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
)

const (
	maxNeighborhoodDepth = 3
	secondHopLimit       = 3
	raterLimit           = 10
	raterMinRating       = 4
)

// BookRecommender yields scored recommendations for a seed book.
type BookRecommender interface {
	Recommend(ctx context.Context, bookID string, strategy domain.Strategy, limit int) ([]domain.Recommendation, error)
}

// GraphService assembles renderable subgraphs around books, authors and
// shelves for the visualization endpoints.
type GraphService struct {
	store graph.Store
	recs  BookRecommender
	log   *logger.Logger
}

// NewGraphService creates a graph visualization service.
func NewGraphService(store graph.Store, recs BookRecommender, log *logger.Logger) *GraphService {
	return &GraphService{store: store, recs: recs, log: log}
}

// NeighborhoodOptions tune what a book neighborhood includes.
type NeighborhoodOptions struct {
	Depth          int  // similarity hops, clamped to [1, 3]
	IncludeReaders bool // attach top raters of the center book
}

// builder accumulates nodes and edges, keeping node IDs unique.
type builder struct {
	g    domain.Graph
	seen map[string]bool
}

func newBuilder() *builder {
	return &builder{
		g:    domain.Graph{Nodes: []domain.GraphNode{}, Edges: []domain.GraphEdge{}},
		seen: map[string]bool{},
	}
}

func (b *builder) addNode(n domain.GraphNode) {
	if b.seen[n.ID] {
		return
	}
	b.seen[n.ID] = true
	b.g.Nodes = append(b.g.Nodes, n)
}

func (b *builder) addEdge(source, target, edgeType string) {
	b.g.Edges = append(b.g.Edges, domain.GraphEdge{
		Source: source,
		Target: target,
		Type:   edgeType,
		Color:  domain.ColorEdge,
	})
}

func bookNodeID(id string) string    { return "book_" + id }
func authorNodeID(id string) string  { return "author_" + id }
func shelfNodeID(name string) string { return "shelf_" + name }
func seriesNodeID(id string) string  { return "series_" + id }
func userNodeID(id string) string    { return "user_" + id }

func bookNode(b domain.Book, size float64) domain.GraphNode {
	return domain.GraphNode{
		ID:    bookNodeID(b.BookID),
		Label: b.DisplayTitle(),
		Type:  "book",
		Color: domain.ColorBook,
		Size:  size,
	}
}

// BookNeighborhood returns the subgraph around one book: its authors,
// shelves, series, similar books up to opts.Depth hops and optionally the
// readers who rated it highly.
func (s *GraphService) BookNeighborhood(ctx context.Context, bookID string, opts NeighborhoodOptions) (*domain.Graph, error) {
	depth := opts.Depth
	if depth < 1 {
		depth = 1
	}
	if depth > maxNeighborhoodDepth {
		depth = maxNeighborhoodDepth
	}

	detail, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	center := bookNodeID(detail.BookID)
	b.addNode(bookNode(detail.Book, 24))

	for _, a := range detail.Authors {
		id := authorNodeID(a.AuthorID)
		b.addNode(domain.GraphNode{ID: id, Label: authorLabel(a), Type: "author", Color: domain.ColorAuthor, Size: 16})
		b.addEdge(id, center, "WROTE")
	}
	for _, sh := range detail.Shelves {
		id := shelfNodeID(sh.Name)
		b.addNode(domain.GraphNode{ID: id, Label: sh.Name, Type: "shelf", Color: domain.ColorShelf, Size: 12})
		b.addEdge(center, id, "SHELVED_AS")
	}
	for _, sid := range detail.SeriesIDs {
		id := seriesNodeID(sid)
		b.addNode(domain.GraphNode{ID: id, Label: sid, Type: "series", Color: domain.ColorSeries, Size: 12})
		b.addEdge(center, id, "IN_SERIES")
	}

	similar, err := s.store.SimilarBooks(ctx, bookID, 10)
	if err != nil {
		return nil, err
	}
	for _, sb := range similar {
		id := bookNodeID(sb.BookID)
		b.addNode(bookNode(sb, 14))
		b.addEdge(center, id, "SIMILAR_TO")
	}

	// Second similarity hop, kept small so the graph stays readable.
	if depth >= 2 {
		for _, sb := range similar {
			second, err := s.store.SimilarBooks(ctx, sb.BookID, secondHopLimit)
			if err != nil {
				return nil, err
			}
			from := bookNodeID(sb.BookID)
			for _, sb2 := range second {
				id := bookNodeID(sb2.BookID)
				if id == center {
					continue
				}
				b.addNode(bookNode(sb2, 10))
				b.addEdge(from, id, "SIMILAR_TO")
			}
		}
	}

	if opts.IncludeReaders {
		raters, err := s.store.TopRaters(ctx, bookID, raterMinRating, raterLimit)
		if err != nil {
			return nil, err
		}
		for _, r := range raters {
			id := userNodeID(r.UserID)
			b.addNode(domain.GraphNode{ID: id, Label: r.UserID, Type: "user", Color: domain.ColorUser, Size: 8})
			b.addEdge(id, center, "INTERACTED")
		}
	}

	return &b.g, nil
}

// AuthorGraph returns an author with their books fanning out.
func (s *GraphService) AuthorGraph(ctx context.Context, authorID string, limit int) (*domain.Graph, error) {
	if limit <= 0 {
		limit = 20
	}

	author, err := s.store.Author(ctx, authorID)
	if err != nil {
		return nil, err
	}
	books, _, err := s.store.AuthorBooks(ctx, authorID, domain.PageParams{Page: 0, Size: limit})
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	center := authorNodeID(author.AuthorID)
	b.addNode(domain.GraphNode{ID: center, Label: author.Name, Type: "author", Color: domain.ColorAuthor, Size: 24})
	for _, book := range books {
		id := bookNodeID(book.BookID)
		b.addNode(bookNode(book, 14))
		b.addEdge(center, id, "WROTE")
	}
	return &b.g, nil
}

// ShelfGraph returns a shelf with its most-shelved books fanning out.
func (s *GraphService) ShelfGraph(ctx context.Context, shelfName string, limit int) (*domain.Graph, error) {
	if limit <= 0 {
		limit = 20
	}

	books, err := s.store.ShelfBooks(ctx, shelfName, limit)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	center := shelfNodeID(shelfName)
	b.addNode(domain.GraphNode{ID: center, Label: shelfName, Type: "shelf", Color: domain.ColorShelf, Size: 24})
	for _, sb := range books {
		id := bookNodeID(sb.BookID)
		b.addNode(bookNode(sb.Book, 14))
		b.addEdge(center, id, "SHELVED_AS")
	}
	return &b.g, nil
}

// RecommendationGraph renders a hybrid recommendation set as a star
// around the seed book, sized by score.
func (s *GraphService) RecommendationGraph(ctx context.Context, bookID string, limit int) (*domain.Graph, error) {
	detail, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	results, err := s.recs.Recommend(ctx, bookID, domain.StrategyHybrid, limit)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	center := bookNodeID(detail.BookID)
	b.addNode(bookNode(detail.Book, 24))
	for _, rec := range results {
		id := bookNodeID(rec.Book.BookID)
		b.addNode(bookNode(rec.Book, 10+rec.Score*10))
		b.addEdge(center, id, "RECOMMENDED")
	}
	return &b.g, nil
}

func authorLabel(a domain.AuthorRef) string {
	if a.Name != "" {
		return a.Name
	}
	return a.AuthorID
}
