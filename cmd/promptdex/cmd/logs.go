package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/logging"
	"github.com/Aman-CERP/promptdex/internal/output"
)

func newLogsCmd() *cobra.Command {
	var (
		lines   int
		level   string
		pattern string
		file    string
		follow  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View promptdex server logs",
		Long:  `Print the tail of the JSON server log in a readable form, optionally following it.`,
		Example: `  promptdex logs
  promptdex logs -n 100 --level warn
  promptdex logs -f --pattern get_prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := logging.FindLogFile(file)
			if err != nil {
				return err
			}

			cfg := logging.ViewerConfig{
				Level:   level,
				NoColor: noColor || !output.UseColor(cmd.OutOrStdout()),
			}
			if pattern != "" {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return fmt.Errorf("invalid --pattern: %w", err)
				}
				cfg.Pattern = re
			}
			viewer := logging.NewViewer(cfg, cmd.OutOrStdout())

			entries, err := viewer.Tail(path, lines)
			if err != nil {
				return err
			}
			viewer.Print(entries)

			if !follow {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch := make(chan logging.LogEntry)
			errCh := make(chan error, 1)
			go func() {
				errCh <- viewer.Follow(ctx, path, ch)
			}()
			for {
				select {
				case entry := <-ch:
					viewer.Print([]logging.LogEntry{entry})
				case err := <-errCh:
					return err
				}
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level: debug, info, warn, error")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Only show lines matching this regular expression")
	cmd.Flags().StringVar(&file, "file", "", "Log file (default: ~/.promptdex/logs/server.log)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")

	return cmd
}
