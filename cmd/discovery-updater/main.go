// Command discovery-updater resolves and publishes the discovery document
// corpus of a discovery-artifact-manager repository.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/config/file"
	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/git"
	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/github"
	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/regen"
	"github.com/custodia-labs/discovery-updater/internal/adapters/driving/cli"
	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/core/services"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	store, err := file.NewConfigStore(os.Getenv("DISCOVERY_UPDATER_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	cfg, err := file.ResolveConfig(store, os.Getenv)
	if err != nil {
		return err
	}

	resolver := services.NewResolverService(cfg)

	gitCLI, err := git.NewCLI(ctx)
	if err != nil {
		// resolve and index work without git; update reports the missing cloner.
		logger.Debug("git unavailable: %v", err)
	}

	var publisher *services.PublisherService
	if gitCLI != nil {
		publisher = services.NewPublisherService(cfg, gitCLI, regen.NewRunner(cfg), resolver)
	} else {
		publisher = services.NewPublisherService(cfg, nil, regen.NewRunner(cfg), resolver)
	}
	publisher.SetReviewRequestCreator(reviewRequestCreator(cfg))

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Resolver:  resolver,
		Publisher: publisher,
		Config:    store,
		Account: func() (domain.Account, error) {
			return file.ResolveAccount(store, os.Getenv)
		},
		OpenRepository: repositoryOpener(gitCLI),
	})

	return cli.Execute(ctx)
}

// repositoryOpener opens existing checkouts with git, or reports that git is
// missing.
func repositoryOpener(gitCLI *git.CLI) cli.RepositoryOpener {
	return func(ctx context.Context, dir string, account *domain.Account) (driven.Repository, error) {
		if gitCLI == nil {
			return nil, git.ErrGitNotFound
		}
		repo, err := gitCLI.Open(ctx, dir, account)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// reviewRequestCreator targets github.com or the enterprise API of the
// configured host.
func reviewRequestCreator(cfg domain.Config) *github.PullRequestCreator {
	if cfg.RemoteHost == domain.DefaultRemoteHost {
		return github.NewPullRequestCreator()
	}
	return github.NewPullRequestCreatorWithBaseURL(fmt.Sprintf("https://%s/api/v3/", cfg.RemoteHost), nil)
}
