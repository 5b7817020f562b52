// Package server serves the product table over HTTP: the HTML page at "/",
// the same frame as JSON at "/api/products" and a health check.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/producttable/internal/catalog"
	"github.com/rshade/producttable/internal/logging"
	"github.com/rshade/producttable/internal/pagination"
)

// Timeouts applied to the listener.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ProductSource exposes the loaded catalog. *catalog.Store implements it.
type ProductSource interface {
	Products() catalog.Collection
	Loaded() bool
}

// Options configures request handling.
type Options struct {
	// PageSize is used when a request has no size parameter.
	PageSize        int
	PageSizeOptions []int
	Placeholder     string
	Location        *time.Location
}

// Server routes requests to the table handlers.
type Server struct {
	source ProductSource
	opts   Options
	logger zerolog.Logger
	router chi.Router
}

// New builds a Server reading products from source.
func New(source ProductSource, opts Options, logger zerolog.Logger) *Server {
	if opts.PageSize <= 0 {
		opts.PageSize = pagination.DefaultPageSize
	}

	s := &Server{
		source: source,
		opts:   opts,
		logger: logging.ComponentLogger(logger, "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", HandleTable(source, opts))
	r.Get("/api/products", HandleProducts(source, opts))
	r.Get("/healthz", HandleHealth(source))

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("operation", "listen").
			Str("addr", addr).
			Msg("serving product table")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.logger.Info().Str("operation", "shutdown").Msg("stopping server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// requestLogger stores a request-scoped logger carrying the request ID as the
// trace ID and logs each completed request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		traceID := middleware.GetReqID(r.Context())
		if traceID == "" {
			traceID = logging.GenerateTraceID()
		}
		logger := logging.WithTraceID(s.logger, traceID)

		ctx := logging.ContextWithTraceID(r.Context(), traceID)
		ctx = logger.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Debug().
			Str("operation", "request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
