package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookfinder/bookfinder-server/internal/domain"
)

func (s *Server) registerRecommendRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommendBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/{bookId}",
		Summary:     "Recommend books",
		Description: "Returns recommendations for a seed book using the chosen strategy",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommend)

	huma.Register(s.api, huma.Operation{
		OperationID: "readersAlsoLiked",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/{bookId}/readers-also-liked",
		Summary:     "Readers also liked",
		Description: "Returns books highly rated by readers who also rated this book highly",
		Tags:        []string{"Recommendations"},
	}, s.handleReadersAlsoLiked)

	huma.Register(s.api, huma.Operation{
		OperationID: "moreByAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/author/{authorId}",
		Summary:     "More by author",
		Description: "Returns the author's other books, most-rated first",
		Tags:        []string{"Recommendations"},
	}, s.handleMoreByAuthor)
}

// === DTOs ===

type RecommendInput struct {
	BookID   string `path:"bookId" doc:"Seed book ID"`
	Strategy string `query:"strategy" enum:"graph,shelf,collaborative,hybrid" doc:"Recommendation strategy (default hybrid)"`
	Limit    int    `query:"limit" maximum:"50" doc:"Maximum results (default 10)"`
}

type ReadersAlsoLikedInput struct {
	BookID string `path:"bookId" doc:"Seed book ID"`
	Limit  int    `query:"limit" maximum:"50" doc:"Maximum results (default 10)"`
}

type MoreByAuthorInput struct {
	AuthorID string `path:"authorId" doc:"Author ID"`
	Exclude  string `query:"exclude" doc:"Book ID to leave out, typically the one being viewed"`
	Limit    int    `query:"limit" maximum:"50" doc:"Maximum results (default 10)"`
}

type RecommendationsOutput struct {
	Body []domain.Recommendation
}

// === Handlers ===

func (s *Server) handleRecommend(ctx context.Context, input *RecommendInput) (*RecommendationsOutput, error) {
	recs, err := s.services.Recommend.Recommend(ctx, input.BookID, domain.Strategy(input.Strategy), input.Limit)
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: recs}, nil
}

func (s *Server) handleReadersAlsoLiked(ctx context.Context, input *ReadersAlsoLikedInput) (*RecommendationsOutput, error) {
	recs, err := s.services.Recommend.ReadersAlsoLiked(ctx, input.BookID, input.Limit)
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: recs}, nil
}

func (s *Server) handleMoreByAuthor(ctx context.Context, input *MoreByAuthorInput) (*BookListOutput, error) {
	books, err := s.services.Recommend.MoreByAuthor(ctx, input.AuthorID, input.Exclude, input.Limit)
	if err != nil {
		return nil, err
	}
	return &BookListOutput{Body: books}, nil
}
