// Package httpapi serves the catalog as a JSON API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// Catalog is the subset of catalog.Service the API needs.
type Catalog interface {
	List(ctx context.Context, opts query.Options) ([]scanner.Document, error)
	Get(ctx context.Context, id string) (scanner.Document, error)
	Categories(ctx context.Context) ([]query.CategorySummary, error)
}

// Options configures the router.
type Options struct {
	// AllowedOrigins for CORS. Empty means "*".
	AllowedOrigins []string

	// Metrics records request counts and exposes /metrics. May be nil.
	Metrics *telemetry.Collector

	// Logger for request and handler logs (nil = slog.Default()).
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(catalog Catalog, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handler{catalog: catalog, logger: opts.Logger}

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(opts.Logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(metrics(opts.Metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", h.health)
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/prompts", h.listPrompts)
		r.Get("/prompts/{id}", h.getPrompt)
		r.Get("/categories", h.listCategories)
	})

	return router
}
