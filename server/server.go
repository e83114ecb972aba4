// SPDX-License-Identifier: MIT

// Package server hosts a voxhook App behind a production HTTP stack:
// chi routing, request correlation, metrics, tracing and rate limiting,
// with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/voxhook/voxhook"
	"github.com/voxhook/voxhook/config"
	"github.com/voxhook/voxhook/internal/log"
)

// Server wires a webhook App into an HTTP server.
type Server struct {
	cfg    config.Config
	app    *voxhook.App
	logger zerolog.Logger
}

// New builds a Server around the given App.
func New(cfg config.Config, app *voxhook.App) *Server {
	return &Server{
		cfg:    cfg,
		app:    app,
		logger: log.WithComponent("server"),
	}
}

// Router constructs the chi router with the canonical middleware stack:
// recoverer outermost, then correlation, observability and rate limiting.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Recoverer)
	r.Use(RequestID)
	r.Use(Metrics)
	if s.cfg.Telemetry.Enabled {
		r.Use(Tracing("voxhook/server"))
	}
	r.Use(Logging)
	if s.cfg.RateLimit > 0 {
		r.Use(RateLimit(s.cfg.RateLimit))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/", otelhttp.NewHandler(s.app, "voxhook.webhook"))
	return r
}

// Run serves until ctx is cancelled, then drains within the configured
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().
			Str("addr", s.cfg.Listen).
			Str(log.FieldEvent, "server.start").
			Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Str(log.FieldEvent, "server.shutdown").Msg("draining")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
