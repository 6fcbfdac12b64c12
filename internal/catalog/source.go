package catalog

import (
	"context"

	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// ScannerSource runs a full scan on every call.
type ScannerSource struct {
	scanner *scanner.Scanner
	metrics *telemetry.Collector
}

// NewScannerSource wraps s. metrics may be nil.
func NewScannerSource(s *scanner.Scanner, metrics *telemetry.Collector) *ScannerSource {
	return &ScannerSource{scanner: s, metrics: metrics}
}

// Documents implements Source.
func (src *ScannerSource) Documents(ctx context.Context) ([]scanner.Document, error) {
	docs, stats, err := src.scanner.Index(ctx)
	if err != nil {
		return nil, err
	}
	src.metrics.RecordScan(stats.Duration, len(docs), stats.FilesSkipped, stats.DirsSkipped)
	return docs, nil
}

// Root returns the absolute root directory being scanned.
func (src *ScannerSource) Root() (string, error) {
	return src.scanner.Root()
}
