package http

import (
	"seo_checker/internal/http/handlers"
	"seo_checker/internal/http/middleware"
	"seo_checker/internal/pkg/metrics"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func initRoutes(r *Router, progress handlers.ProgressFunc) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))
	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Get("/progress", handlers.NewProgressHandler(progress, r.log).Handle)
	r.httpRouter.Method("GET", "/metrics", promhttp.HandlerFor(metrics.MetricsRegister(), promhttp.HandlerOpts{}))
	r.httpRouter.Mount("/debug", chiMiddleware.Profiler())
}
