package driving

import (
	"context"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// DocumentResolver answers which discovery document serves each API.
type DocumentResolver interface {
	// Resolve scans the corpus under repoDir and returns the API ID to
	// document path mapping, narrowed by opts.
	Resolve(ctx context.Context, repoDir string, opts domain.ResolveOptions) (domain.DocumentMap, error)

	// LoadIndex parses the corpus index under repoDir.
	LoadIndex(ctx context.Context, repoDir string) (*domain.DiscoveryIndex, error)
}
