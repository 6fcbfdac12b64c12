package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/catalog"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/output"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one prompt with its content",
		Example: `  promptdex show tools-coding-code-review
  promptdex show tools-coding-code-review --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(nil)
			if err != nil {
				return err
			}
			doc, err := a.service.Get(cmd.Context(), args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				var de *dexerrors.DexError
				if errors.As(err, &de) {
					de.WithSuggestion("Run 'promptdex list' to see available ids")
				}
				return err
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), doc)
			}

			out := output.New(cmd.OutOrStdout())
			out.Header(doc.Title)
			out.Field("ID", doc.ID)
			out.Field("Category", doc.Category)
			out.Field("Description", doc.Description)
			out.Field("Tags", joinTags(doc.Tags))
			out.Field("Words", strconv.Itoa(doc.WordCount))
			out.Field("Modified", doc.LastModified)
			out.Field("Source", doc.SourcePath)
			out.Newline()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Content)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
