// Package regen runs the external discovery regeneration tool.
//
// The tool is a GOPATH-era Go program living in the tracked repository's
// src tree. Each run builds a throwaway GOPATH whose src/<module> entry is
// a symlink to that tree, so imports resolve without touching the host's
// GOPATH.
package regen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.Regenerator = (*Runner)(nil)

// Runner invokes the regeneration command inside a working copy.
type Runner struct {
	command []string
	// parseErr is set when the configured command line cannot be split.
	parseErr   error
	moduleName string
	// tempDir is the parent for temporary GOPATHs; empty uses os.TempDir.
	tempDir string
}

// NewRunner creates a runner for the command and module name in cfg.
// The command line is split with shell quoting rules and $VAR expansion.
func NewRunner(cfg domain.Config) *Runner {
	cfg = cfg.WithDefaults()
	command, err := shell.Fields(cfg.RegenerateCommand, nil)
	if err != nil {
		err = fmt.Errorf("%w: regenerate command %q: %w", domain.ErrInvalidConfig, cfg.RegenerateCommand, err)
	}
	return &Runner{
		command:    command,
		parseErr:   err,
		moduleName: cfg.GoModuleName,
	}
}

// Command returns the command line the runner executes.
func (r *Runner) Command() []string {
	return append([]string(nil), r.command...)
}

// Regenerate runs the tool with repoDir as its working directory.
// The temporary GOPATH is removed whether or not the tool succeeds.
func (r *Runner) Regenerate(ctx context.Context, repoDir string) error {
	if r.parseErr != nil {
		return r.parseErr
	}
	if len(r.command) == 0 {
		return fmt.Errorf("%w: empty regenerate command", domain.ErrInvalidConfig)
	}

	gopath, err := os.MkdirTemp(r.tempDir, "discovery-gopath-")
	if err != nil {
		return fmt.Errorf("create temporary GOPATH: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(gopath); err != nil {
			logger.Warn("remove temporary GOPATH %s: %v", gopath, err)
		}
	}()

	if err := linkSource(gopath, repoDir, r.moduleName); err != nil {
		return err
	}

	logger.Debug("running %s in %s (GOPATH=%s)", strings.Join(r.command, " "), repoDir, gopath)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	cmd.Dir = repoDir
	cmd.Env = append(os.Environ(), "GOPATH="+gopath)
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	if logger.IsVerbose() && out.Len() > 0 {
		logger.Debug("regeneration output:\n%s", strings.TrimRight(out.String(), "\n"))
	}
	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &domain.RegenerationFailedError{
			Command:  r.Command(),
			ExitCode: exitCode,
			Output:   out.String(),
			Cause:    runErr,
		}
	}

	return nil
}

// linkSource creates <gopath>/src/<module> pointing at <repoDir>/src.
func linkSource(gopath, repoDir, module string) error {
	srcDir := filepath.Join(gopath, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("create GOPATH src: %w", err)
	}

	target, err := filepath.Abs(filepath.Join(repoDir, "src"))
	if err != nil {
		return fmt.Errorf("resolve source tree: %w", err)
	}
	if err := os.Symlink(target, filepath.Join(srcDir, module)); err != nil {
		return fmt.Errorf("link source tree: %w", err)
	}
	return nil
}
