package http

import (
	"seo_checker/internal/application/config"
	"seo_checker/internal/http/handlers"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type Router struct {
	httpRouter *chi.Mux
	log        *log.Logger
}

// NewRouter wires the diagnostics routes. progress is polled on every
// /progress request.
func NewRouter(log *log.Logger, progress handlers.ProgressFunc) *chi.Mux {
	router := &Router{
		httpRouter: chi.NewRouter(),
		log:        log,
	}
	initRoutes(router, progress)
	return router.httpRouter
}

// Init starts the diagnostics server for the duration of one run. The
// caller stops it once the run is over.
func Init(log *log.Logger, appCfg *config.AppConfig, progress handlers.ProgressFunc) (*HTTPServer, error) {
	cfg, err := NewHTTPServerConfig(appCfg)
	if err != nil {
		return nil, err
	}

	httpServer := NewHttpServer(cfg, NewRouter(log, progress), log)
	if err := httpServer.Start(); err != nil {
		return nil, err
	}
	return httpServer, nil
}
