// Package cli provides the cobra command tree of the discovery updater.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driving"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool

	resolverService  driving.DocumentResolver
	publisherService driving.CorpusPublisher
	configStore      driven.ConfigStore
	accountResolver  func() (domain.Account, error)
	repositoryOpener RepositoryOpener
)

// RepositoryOpener wraps an existing checkout at dir. The account, when set,
// authenticates pushes.
type RepositoryOpener func(ctx context.Context, dir string, account *domain.Account) (driven.Repository, error)

var rootCmd = &cobra.Command{
	Use:   "discovery-updater",
	Short: "Keep the discovery document corpus up to date",
	Long: `discovery-updater resolves which discovery document serves each API in a
discovery-artifact-manager checkout, and regenerates and publishes the corpus
either by pushing directly or through a pull request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// Services holds the ports the commands drive.
type Services struct {
	Resolver  driving.DocumentResolver
	Publisher driving.CorpusPublisher
	Config    driven.ConfigStore
	// Account resolves the commit identity; it is only called by commands
	// that publish.
	Account func() (domain.Account, error)
	// OpenRepository backs update --repo-dir.
	OpenRepository RepositoryOpener
}

// Configure injects the services used by the commands.
func Configure(s Services) {
	resolverService = s.Resolver
	publisherService = s.Publisher
	configStore = s.Config
	accountResolver = s.Account
	repositoryOpener = s.OpenRepository
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx, which is cancelled on interrupt
// by the caller.
func Execute(ctx context.Context) error {
	// cobra's Print helpers default to stderr.
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func resolveAccount() (domain.Account, error) {
	if accountResolver == nil {
		return domain.Account{}, errors.New("account not configured")
	}
	return accountResolver()
}
