package cmd

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/output"
	"github.com/Aman-CERP/promptdex/internal/query"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		filter     query.Options
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts, optionally filtered",
		Long: `List the prompts in the catalog ordered by title.

--search matches case-insensitively against title, category, content and
tags. --category must match exactly. Both together narrow the result.`,
		Example: `  promptdex list
  promptdex list --search review --category Tools/Coding
  promptdex list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(nil)
			if err != nil {
				return err
			}
			docs, err := a.service.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), docs)
			}
			printPromptTable(output.New(cmd.OutOrStdout()), docs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Case-insensitive substring filter")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Exact category filter")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func printPromptTable(out *output.Writer, docs []scanner.Document) {
	if len(docs) == 0 {
		out.Status("📭", "No prompts found")
		return
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{doc.ID, doc.Title, doc.Category, strconv.Itoa(doc.WordCount)})
	}
	out.Table([]string{"ID", "TITLE", "CATEGORY", "WORDS"}, rows)
	out.Newline()
	out.Dim(pluralize(len(docs), "prompt"))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func pluralize(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
