package cmd

import (
	"os"

	"github.com/Aman-CERP/promptdex/internal/cache"
	"github.com/Aman-CERP/promptdex/internal/catalog"
	"github.com/Aman-CERP/promptdex/internal/config"
	"github.com/Aman-CERP/promptdex/internal/scanner"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
)

// app is the catalog stack assembled from configuration.
type app struct {
	cfg      *config.Config
	root     string
	service  *catalog.Service
	snapshot *cache.Snapshot // nil unless caching is on
	metrics  *telemetry.Collector
}

// newApp builds scanner, optional cache and service for one command.
// metrics may be nil for one-shot CLI commands.
func (o *rootOptions) newApp(metrics *telemetry.Collector) (*app, error) {
	cfg := o.cfg
	if cfg == nil {
		loaded, err := o.loadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	scanOpts := cfg.ScannerOptions(wd)
	scanOpts.Logger = o.logger

	s := scanner.New(scanOpts)
	root, err := s.Root()
	if err != nil {
		return nil, err
	}

	var source catalog.Source = catalog.NewScannerSource(s, metrics)
	a := &app{cfg: cfg, root: root, metrics: metrics}
	if cfg.Cache.Enabled || cfg.Cache.Watch {
		a.snapshot = cache.New(source, root, cfg.Cache.TTL, metrics)
		source = a.snapshot
	}

	a.service = catalog.New(source, catalog.WithMetrics(metrics), catalog.WithLogger(o.logger))
	return a, nil
}
