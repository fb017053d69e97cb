package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/bookfinder/bookfinder-server/internal/api"
	"github.com/bookfinder/bookfinder-server/internal/config"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	apiServer *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.apiServer.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server with all routes configured.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := api.Services{
		Book:      do.MustInvoke[*service.BookService](i),
		Search:    do.MustInvoke[*service.SearchService](i),
		Recommend: do.MustInvoke[*service.RecommendService](i),
		Author:    do.MustInvoke[*service.AuthorService](i),
		Genre:     do.MustInvoke[*service.GenreService](i),
		Mood:      do.MustInvoke[*service.MoodService](i),
		Graph:     do.MustInvoke[*service.GraphService](i),
		Stats:     do.MustInvoke[*service.StatsService](i),
	}

	apiServer := api.NewServer(cfg.Server, services, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, apiServer: apiServer}, nil
}
