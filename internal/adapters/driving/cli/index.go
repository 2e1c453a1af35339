package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index [repo-dir]",
	Short: "List the APIs in the discovery index",
	Long: `Prints every entry of the discovery index with its preferred status.
Entries preferred only through the built-in override table are marked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	index, err := resolverService.LoadIndex(cmd.Context(), repoDirArg(args))
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	if len(index.Items) == 0 {
		cmd.Println("Discovery index is empty.")
		return nil
	}

	styles := stylesFor(cmd.OutOrStdout())
	cmd.Println(styles.Title.Render("Discovery index"))
	cmd.Println()

	preferred := 0
	for _, e := range index.Items {
		marker := styles.Muted.Render("-")
		switch {
		case e.Preferred:
			marker = styles.Preferred.Render("preferred")
		case domain.IsPreferredOverride(e.ID):
			marker = styles.Override.Render("preferred (override)")
		}
		if e.EffectivelyPreferred() {
			preferred++
		}

		line := fmt.Sprintf("  %s  %s", styles.ID.Render(e.ID), marker)
		if e.Title != "" {
			line += "  " + styles.Muted.Render(e.Title)
		}
		cmd.Println(line)
	}

	cmd.Println()
	cmd.Printf("Total: %d APIs, %d preferred\n", len(index.Items), preferred)
	return nil
}
