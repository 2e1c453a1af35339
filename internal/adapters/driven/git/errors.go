package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGitNotFound indicates the git executable is not on PATH.
	ErrGitNotFound = errors.New("git: executable not found")

	// ErrNotRepository indicates a directory is not inside a git working copy.
	ErrNotRepository = errors.New("git: not a repository")
)

// CommandError reports a failed git invocation.
type CommandError struct {
	// Args are the git arguments with credentials redacted.
	Args []string
	// Stderr is the trimmed standard error output.
	Stderr string
	// Cause is the underlying exec error.
	Cause error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CommandError) Unwrap() error {
	return e.Cause
}
