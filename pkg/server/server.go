// Package server exposes the learning path engine over HTTP.
//
// # Routes
//
//	POST /v1/paths       document in, engine run out (JSON)
//	POST /v1/paths/svg   document in, milestone diagram out (SVG)
//	POST /v1/cycles      document in, cycle resolution report out
//	GET  /healthz        liveness and build version
//
// Documents are JSON unless the Content-Type names YAML. Milestone
// capacities default to the server's configuration and can be overridden per
// request with the max_nodes and max_hours query parameters; refresh=true
// bypasses the result cache.
//
// # Errors
//
// Failures are answered with {"error": {"code": ..., "message": ...}}. Input
// that cannot be decoded gets 400, input the engine rejects gets 422, bodies
// over the size limit get 413 and everything else 500.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/observability"
)

// DefaultMaxBodyBytes bounds request documents when Options.MaxBodyBytes is 0.
const DefaultMaxBodyBytes = 10 << 20

// Options configures a [Server].
type Options struct {
	// Runner executes requests. A runner without cache is used if nil.
	Runner *engine.Runner
	// Defaults supplies milestone capacities for requests that omit them.
	Defaults     engine.Options
	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server serves the HTTP API. It holds no per-request state and is safe for
// concurrent use.
type Server struct {
	runner   *engine.Runner
	defaults engine.Options
	logger   *log.Logger
	maxBody  int64
}

// New creates a server from opts.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = engine.NewRunner(nil, nil, opts.Logger)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	opts.Defaults.Logger = nil
	return &Server{
		runner:   opts.Runner,
		defaults: opts.Defaults,
		logger:   opts.Logger,
		maxBody:  opts.MaxBodyBytes,
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/paths", s.handlePaths)
		r.Post("/paths/svg", s.handlePathsSVG)
		r.Post("/cycles", s.handleCycles)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to ten seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
