package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout.

Tools: list_prompts, get_prompt, list_categories.
Resources: prompt://{id}

stdout carries JSON-RPC only; logs go to the log file.`,
		Example: `  # Claude Desktop / editor config
  {"command": "promptdex", "args": ["mcp", "--root", "/path/to/prompts"]}`,
		Annotations: map[string]string{annotationStdio: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.newApp(nil)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(a.service, opts.logger)
			if err != nil {
				return err
			}
			return server.Serve(ctx)
		},
	}
}
