// Package logger provides leveled logging for the discovery updater.
// Debug and info messages are only printed in verbose mode (--verbose);
// warnings and errors are always printed. Output goes to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(always bool, level, tag, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	prefix := "[" + level + "] "
	if tag != "" {
		prefix += "(" + tag + ") "
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(false, "DEBUG", "", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(false, "INFO", "", format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	write(true, "WARN", "", format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	write(true, "ERROR", "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Entry is a logger whose lines carry a fixed tag, such as an update
// cycle's run ID.
type Entry struct {
	tag string
}

// With returns an Entry tagging every line with tag.
func With(tag string) Entry {
	return Entry{tag: tag}
}

// Debug prints a tagged message if verbose mode is enabled.
func (e Entry) Debug(format string, args ...any) {
	write(false, "DEBUG", e.tag, format, args...)
}

// Info prints a tagged informational message if verbose mode is enabled.
func (e Entry) Info(format string, args ...any) {
	write(false, "INFO", e.tag, format, args...)
}

// Warn prints a tagged warning.
func (e Entry) Warn(format string, args ...any) {
	write(true, "WARN", e.tag, format, args...)
}
