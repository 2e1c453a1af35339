package driven

import "context"

// Regenerator rebuilds the on-disk discovery corpus from upstream sources.
type Regenerator interface {
	// Regenerate runs the regeneration tool inside repoDir.
	// A failed run returns an error matching domain.ErrRegenerationFailed.
	Regenerate(ctx context.Context, repoDir string) error
}
