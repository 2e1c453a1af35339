package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

var (
	resolvePreferred bool
	resolveSkip      []string
	resolveJSON      bool
	resolveCloneInto string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [repo-dir]",
	Short: "Map API ids to discovery documents",
	Long: `Scans the discoveries directory of a discovery-artifact-manager checkout and
prints which document serves each API id. When several documents claim the
same id, the first in path order wins.

With --clone-into, a fresh clone of the tracked repository is made in the
given directory and resolved instead of a local checkout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolvePreferred, "preferred", false, "keep only preferred APIs")
	resolveCmd.Flags().StringSliceVar(&resolveSkip, "skip", nil, "API id to leave out (repeatable)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output results as JSON")
	resolveCmd.Flags().StringVar(&resolveCloneInto, "clone-into", "", "clone the tracked repository into this directory first")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	opts := domain.ResolveOptions{PreferredOnly: resolvePreferred, Skip: resolveSkip}

	var (
		docs domain.DocumentMap
		err  error
	)
	if resolveCloneInto != "" {
		if len(args) > 0 {
			return errors.New("repo-dir and --clone-into are mutually exclusive")
		}
		if publisherService == nil {
			return errors.New("publisher service not configured")
		}
		docs, err = publisherService.Discover(cmd.Context(), resolveCloneInto, opts)
	} else {
		if resolverService == nil {
			return errors.New("resolver service not configured")
		}
		docs, err = resolverService.Resolve(cmd.Context(), repoDirArg(args), opts)
	}
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if resolveJSON {
		return outputResolveJSON(cmd, docs)
	}
	return outputResolveTable(cmd, docs)
}

// resolveOutput is the JSON shape of the resolve command.
type resolveOutput struct {
	Documents []domain.DiscoveryDocument `json:"documents"`
	Count     int                        `json:"count"`
}

func outputResolveJSON(cmd *cobra.Command, docs domain.DocumentMap) error {
	sorted := docs.Documents()
	data, err := json.MarshalIndent(resolveOutput{Documents: sorted, Count: len(sorted)}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResolveTable(cmd *cobra.Command, docs domain.DocumentMap) error {
	if len(docs) == 0 {
		cmd.Println("No discovery documents found.")
		return nil
	}

	styles := stylesFor(cmd.OutOrStdout())
	for _, d := range docs.Documents() {
		cmd.Printf("%s\t%s\n", styles.ID.Render(d.ID), d.Path)
	}
	return nil
}

// repoDirArg returns the optional repo-dir argument, defaulting to ".".
func repoDirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
