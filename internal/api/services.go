package api

import (
	"github.com/bookfinder/bookfinder-server/internal/service"
)

// Services groups the discovery services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Book      *service.BookService
	Search    *service.SearchService
	Recommend *service.RecommendService
	Author    *service.AuthorService
	Genre     *service.GenreService
	Mood      *service.MoodService
	Graph     *service.GraphService
	Stats     *service.StatsService
}
