package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

// ProvideBookService provides the catalog browsing service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewBookService(store.Neo4jStore, log), nil
}

// ProvideSearchService provides full-text search and typeahead.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSearchService(store.Neo4jStore, index.Index, log), nil
}

// ProvideRecommendService provides the recommendation engine facade.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewRecommendService(store.Neo4jStore, log), nil
}

// ProvideAuthorService provides author lookups.
func ProvideAuthorService(i do.Injector) (*service.AuthorService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewAuthorService(store.Neo4jStore, log), nil
}

// ProvideGenreService provides genre browsing and shelf aggregates.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewGenreService(store.Neo4jStore, log), nil
}

// ProvideMoodService provides mood-based browsing.
func ProvideMoodService(i do.Injector) (*service.MoodService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewMoodService(store.Neo4jStore, log), nil
}

// ProvideGraphService provides the visualization subgraph assembler.
func ProvideGraphService(i do.Injector) (*service.GraphService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	recommend := do.MustInvoke[*service.RecommendService](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewGraphService(store.Neo4jStore, recommend, log), nil
}

// ProvideStatsService provides health and graph statistics.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	store := do.MustInvoke[*GraphStoreHandle](i)
	watcherHandle := do.MustInvoke[*CorpusWatcherHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var staleness service.StalenessReporter
	if watcherHandle.CorpusWatcher != nil {
		staleness = watcherHandle.CorpusWatcher
	}
	return service.NewStatsService(store.Neo4jStore, staleness, log), nil
}
