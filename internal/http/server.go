package http

import (
	"context"
	"net"
	"net/http"

	"seo_checker/internal/pkg/errors"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type HTTPServer struct {
	config *HTTPServerConfig
	server *http.Server
	log    *log.Logger
}

func NewHttpServer(config *HTTPServerConfig, router *chi.Mux, log *log.Logger) *HTTPServer {
	return &HTTPServer{
		config: config,
		server: &http.Server{
			Addr:              config.Host,
			Handler:           router,
			ReadTimeout:       config.Timeouts.Read,
			ReadHeaderTimeout: config.Timeouts.ReadHeader,
			WriteTimeout:      config.Timeouts.Write,
			IdleTimeout:       config.Timeouts.Idle,
		},
		log: log,
	}
}

// Start binds the listener and serves in the background, so a bad address
// is reported to the caller instead of the serving goroutine.
func (s *HTTPServer) Start() error {
	ln, err := net.Listen(`tcp`, s.server.Addr)
	if err != nil {
		return errors.Wrap(err, `failed to listen`)
	}

	s.log.Info(`diagnostics server listening on: `, ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error(`diagnostics server stopped`)
		}
	}()
	return nil
}

func (s *HTTPServer) Stop() error {
	if s.server == nil {
		return errors.New(`server is not initialized`)
	}
	s.log.Info(`shutting down diagnostics server...`)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeouts.ShutdownWait)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, `failed to shutdown diagnostics server`)
	}

	s.log.Info(`diagnostics server exiting`)
	return nil
}
