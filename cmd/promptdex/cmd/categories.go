package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/promptdex/internal/output"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories by prompt count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(nil)
			if err != nil {
				return err
			}
			cats, err := a.service.Categories(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), cats)
			}

			out := output.New(cmd.OutOrStdout())
			if len(cats) == 0 {
				out.Status("📭", "No categories found")
				return nil
			}
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
			}
			out.Table([]string{"CATEGORY", "PROMPTS"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
