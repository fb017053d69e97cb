// Package di provides dependency injection configuration for the
// bookfinder server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/di/providers"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideGraphStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideCorpusWatcher)

	// Discovery services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideRecommendService)
	do.Provide(injector, providers.ProvideAuthorService)
	do.Provide(injector, providers.ProvideGenreService)
	do.Provide(injector, providers.ProvideMoodService)
	do.Provide(injector, providers.ProvideGraphService)
	do.Provide(injector, providers.ProvideStatsService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly initializes every service so startup failures surface
// immediately instead of on first request.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.GraphStoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.CorpusWatcherHandle](injector)

	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.RecommendService](injector)
	_ = do.MustInvoke[*service.AuthorService](injector)
	_ = do.MustInvoke[*service.GenreService](injector)
	_ = do.MustInvoke[*service.MoodService](injector)
	_ = do.MustInvoke[*service.GraphService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
