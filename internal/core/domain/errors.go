package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// Each structured error type below matches its sentinel via errors.Is.
var (
	// ErrMalformedDocument indicates a discovery document could not be read,
	// is not valid JSON, or lacks a string "id" field.
	ErrMalformedDocument = errors.New("malformed discovery document")

	// ErrMalformedIndex indicates the discovery index could not be read,
	// is not valid JSON, or lacks an "items" list.
	ErrMalformedIndex = errors.New("malformed discovery index")

	// ErrRegenerationFailed indicates the regeneration tool exited non-zero
	// or could not be started.
	ErrRegenerationFailed = errors.New("discovery regeneration failed")

	// ErrReviewRequestFailed indicates the pull request could not be opened.
	// The branch has already been pushed when this is returned.
	ErrReviewRequestFailed = errors.New("review request failed")

	// ErrInvalidConfig indicates the configuration is incomplete or malformed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingAccount indicates the account lacks the fields an operation needs.
	ErrMissingAccount = errors.New("account incomplete")

	// ErrNotImplemented indicates a required collaborator was not provided.
	ErrNotImplemented = errors.New("not implemented")
)

// MalformedDocumentError reports a discovery document that cannot be used.
type MalformedDocumentError struct {
	// Path is the offending document file.
	Path string
	// Message describes what was wrong with the content.
	Message string
	// Cause is the underlying read or decode error, if any.
	Cause error
}

func (e *MalformedDocumentError) Error() string {
	msg := "malformed discovery document " + e.Path
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedDocumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// MalformedIndexError reports a discovery index that cannot be used.
type MalformedIndexError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedIndexError) Error() string {
	msg := "malformed discovery index " + e.Path
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedIndexError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedIndexError) Is(target error) bool {
	return target == ErrMalformedIndex
}

// RegenerationFailedError reports a failed run of the regeneration tool.
type RegenerationFailedError struct {
	// Command is the command line that was run.
	Command []string
	// ExitCode is the process exit code, or -1 if it never ran to completion.
	ExitCode int
	// Output is the combined stdout and stderr of the tool.
	Output string
	// Cause is the underlying exec error.
	Cause error
}

func (e *RegenerationFailedError) Error() string {
	msg := fmt.Sprintf("regeneration command %q failed", strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RegenerationFailedError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RegenerationFailedError) Is(target error) bool {
	return target == ErrRegenerationFailed
}
