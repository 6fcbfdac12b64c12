// Package catalog answers the three catalog requests: list/search,
// get by id, and list categories. Each request reads a fresh document
// collection from its Source; nothing is retained between calls unless
// the Source itself caches.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// Operation names used in logs and metrics.
const (
	OpList       = "list"
	OpGet        = "get"
	OpCategories = "categories"
)

// ErrNotFound is returned by Get when no document has the requested id.
// Match it with errors.Is; returned errors carry the id as a detail.
var ErrNotFound = dexerrors.New(dexerrors.ErrCodeDocumentNotFound, "prompt not found", nil)

// Source produces the full document collection in encounter order.
type Source interface {
	Documents(ctx context.Context) ([]scanner.Document, error)
}

// Service implements the catalog requests on top of a Source.
type Service struct {
	source  Source
	metrics *telemetry.Collector
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records per-operation metrics.
func WithMetrics(m *telemetry.Collector) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service reading from source.
func New(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the documents matching opts, ordered by title.
func (s *Service) List(ctx context.Context, opts query.Options) ([]scanner.Document, error) {
	start := time.Now()

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return nil, s.fail(OpList, start, err)
	}

	// Sources may share their slice between callers.
	docs = slices.Clone(docs)
	scanner.SortByTitle(docs)
	result := query.Filter(docs, opts)

	s.done(OpList, start, telemetry.StatusSuccess,
		slog.Int("results", len(result)),
		slog.String("category", opts.Category),
		slog.String("search", opts.Search))
	return result, nil
}

// Get returns the first document with the given id, or an error matching ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (scanner.Document, error) {
	start := time.Now()

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return scanner.Document{}, s.fail(OpGet, start, err)
	}

	doc, ok := query.Find(docs, id)
	if !ok {
		s.done(OpGet, start, telemetry.StatusNotFound, slog.String("id", id))
		return scanner.Document{}, dexerrors.New(dexerrors.ErrCodeDocumentNotFound,
			fmt.Sprintf("prompt %q not found", id), nil).WithDetail("id", id)
	}

	s.done(OpGet, start, telemetry.StatusSuccess, slog.String("id", id))
	return doc, nil
}

// Categories returns per-category document counts, largest first.
func (s *Service) Categories(ctx context.Context) ([]query.CategorySummary, error) {
	start := time.Now()

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return nil, s.fail(OpCategories, start, err)
	}

	summaries := query.Categories(docs)

	s.done(OpCategories, start, telemetry.StatusSuccess, slog.Int("categories", len(summaries)))
	return summaries, nil
}

func (s *Service) done(op string, start time.Time, status string, attrs ...any) {
	elapsed := time.Since(start)
	s.metrics.RecordOperation(op, status, elapsed)

	args := append([]any{
		slog.String("operation", op),
		slog.String("status", status),
		slog.Duration("duration", elapsed),
	}, attrs...)
	s.logger.Debug("catalog request", args...)
}

func (s *Service) fail(op string, start time.Time, err error) error {
	elapsed := time.Since(start)
	s.metrics.RecordOperation(op, telemetry.StatusError, elapsed)

	args := append([]any{
		slog.String("operation", op),
		slog.Duration("duration", elapsed),
	}, dexerrors.LogAttrs(err)...)
	s.logger.Error("catalog request failed", args...)

	return fmt.Errorf("%s: %w", op, err)
}
