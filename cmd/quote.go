package cmd

import (
	"fmt"

	"github.com/rnwolfe/siptrackr/internal/quotes"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var quoteAll bool

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show today's mindful quote",
	Args:  cobra.NoArgs,
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().BoolVarP(&quoteAll, "all", "a", false, "List every quote")
}

func runQuote(_ *cobra.Command, _ []string) error {
	if !quoteAll {
		q := quotes.Daily(nowFunc())
		fmt.Printf("  %s %s\n", ui.IconQuote, ui.Accent.Render(q.Text))
		fmt.Printf("    %s\n", ui.Muted.Render("— "+q.Author))
		return nil
	}
	for _, q := range quotes.All() {
		fmt.Printf("  %s %s\n", ui.IconDot, q.String())
	}
	return nil
}
