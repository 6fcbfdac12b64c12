package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/httpapi"
	"github.com/Aman-CERP/promptdex/internal/output"
	"github.com/Aman-CERP/promptdex/internal/telemetry"
	"github.com/Aman-CERP/promptdex/internal/watcher"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON HTTP API",
		Long: `Serve the prompt catalog over HTTP.

Routes:
  GET /api/prompts?search=&category=   prompts ordered by title
  GET /api/prompts/{id}                one prompt
  GET /api/categories                  categories by prompt count
  GET /health                          liveness
  GET /metrics                         Prometheus metrics

With --watch, filesystem changes under the root invalidate the cached
catalog immediately instead of waiting for cache.ttl.`,
		Example: `  promptdex serve
  promptdex serve --addr :9000 --root ~/prompts --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				opts.cfg.Server.Addr = addr
			}
			if watch {
				opts.cfg.Cache.Watch = true
			}

			a, err := opts.newApp(telemetry.New(""))
			if err != nil {
				return err
			}

			listener, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return dexerrors.New(dexerrors.ErrCodeServeFailed,
					fmt.Sprintf("cannot listen on %s", a.cfg.Server.Addr), err).
					WithDetail("addr", a.cfg.Server.Addr).
					WithSuggestion("pass --addr or set PROMPTDEX_ADDR to a free address")
			}

			out := output.New(cmd.OutOrStdout())
			out.Statusf("📚", "Serving %s", a.root)
			out.Statusf("🌐", "Listening on http://%s", listener.Addr())

			return runServer(ctx, a, listener, opts.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Invalidate the cache on filesystem changes")

	return cmd
}

// runServer serves the API on listener and, when enabled, watches the root.
// Both stop when ctx is cancelled.
func runServer(ctx context.Context, a *app, listener net.Listener, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	router := httpapi.NewRouter(a.service, httpapi.Options{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Metrics:        a.metrics,
		Logger:         logger,
	})
	server := httpapi.NewServer(listener.Addr().String(), router, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Serve(ctx, listener)
	})

	if a.cfg.Cache.Watch && a.snapshot != nil {
		g.Go(func() error {
			w := watcher.New(a.root, watcher.Options{
				ExcludeDirs: a.cfg.Scan.ExcludeDirs,
				Extensions:  a.cfg.Scan.Extensions,
				Logger:      logger,
			})
			err := w.Run(ctx, func(batch []watcher.FileEvent) {
				logger.Debug("catalog changed, invalidating cache", slog.Int("events", len(batch)))
				a.snapshot.Invalidate()
			})
			if err != nil {
				// Serving continues; entries still expire after cache.ttl.
				logger.Warn("file watching disabled", slog.String("root", a.root), slog.String("error", err.Error()))
			}
			return nil
		})
	}

	return g.Wait()
}
