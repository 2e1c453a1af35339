package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/github"
	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

var (
	updateWorkDir     string
	updateRepoDir     string
	updatePullRequest bool
	updateJSON        bool
)

// branchReporter is implemented by working copies that can name their
// checked out branch.
type branchReporter interface {
	CurrentBranch(ctx context.Context) (string, error)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Regenerate and publish the discovery corpus",
	Long: `Clones the tracked repository, runs the regeneration tool and commits any
change to the discoveries directory.

By default the commit is pushed straight to the checked out branch. With
--pull-request the commit goes to a new update-discovery-artifacts-<timestamp>
branch and a pull request is opened against the base branch.

Without --work-dir a temporary directory is used and removed afterwards.
With --repo-dir an existing checkout is published in place instead of cloning.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateWorkDir, "work-dir", "w", "", "directory to clone into")
	updateCmd.Flags().StringVar(&updateRepoDir, "repo-dir", "", "publish an existing checkout instead of cloning")
	updateCmd.Flags().BoolVar(&updatePullRequest, "pull-request", false, "publish through a pull request")
	updateCmd.Flags().BoolVar(&updateJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	if publisherService == nil {
		return errors.New("publisher service not configured")
	}

	if updateRepoDir != "" && updateWorkDir != "" {
		return errors.New("--repo-dir and --work-dir cannot be used together")
	}

	account, err := resolveAccount()
	if err != nil {
		return err
	}

	logger.Section("update")

	var result *domain.UpdateResult
	if updateRepoDir != "" {
		result, err = publishCheckout(cmd, updateRepoDir, account)
	} else {
		result, err = publishClone(cmd, account)
	}

	// A failed pull request still leaves a pushed branch worth reporting.
	if result != nil {
		if printErr := printUpdateResult(cmd, result); printErr != nil {
			return printErr
		}
	}
	if err != nil {
		if github.IsValidationFailed(err) {
			cmd.Println("A pull request for this branch already exists.")
		}
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

// publishClone clones into the work dir, or a temporary one, and publishes.
func publishClone(cmd *cobra.Command, account domain.Account) (*domain.UpdateResult, error) {
	workDir := updateWorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "discovery-updater-")
		if err != nil {
			return nil, fmt.Errorf("failed to create work dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}
	logger.Debug("working in %s", workDir)

	if updatePullRequest {
		return publisherService.CreatePullRequest(cmd.Context(), workDir, account)
	}
	return publisherService.Update(cmd.Context(), workDir, account)
}

// publishCheckout publishes the working copy at dir without cloning.
func publishCheckout(cmd *cobra.Command, dir string, account domain.Account) (*domain.UpdateResult, error) {
	if repositoryOpener == nil {
		return nil, errors.New("opening existing checkouts is not available")
	}

	repo, err := repositoryOpener(cmd.Context(), dir, &account)
	if err != nil {
		return nil, err
	}
	if br, ok := repo.(branchReporter); ok {
		if branch, err := br.CurrentBranch(cmd.Context()); err == nil {
			logger.Info("Publishing %s from branch %s", dir, branch)
		}
	}

	if updatePullRequest {
		return publisherService.PublishViaReviewRequest(cmd.Context(), repo, account)
	}
	return publisherService.PublishDirect(cmd.Context(), repo, account)
}

func printUpdateResult(cmd *cobra.Command, result *domain.UpdateResult) error {
	if updateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if !result.Updated() {
		cmd.Println("Discovery documents are up to date.")
		return nil
	}

	styles := stylesFor(cmd.OutOrStdout())
	cmd.Printf("Committed %s\n", styles.ID.Render(result.CommitHash))
	for _, c := range result.Changes {
		cmd.Printf("  %-4s %s\n", c.Status, c.Path)
	}

	switch result.Outcome {
	case domain.OutcomeCommittedDirect:
		cmd.Println("Pushed to the current branch.")
	case domain.OutcomeCommittedPendingReview:
		cmd.Printf("Pushed branch %s\n", result.Branch)
		if result.ReviewRequest != nil {
			cmd.Printf("Opened pull request #%d: %s\n", result.ReviewRequest.Number, result.ReviewRequest.URL)
		}
	}
	return nil
}
