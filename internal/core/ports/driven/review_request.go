package driven

import (
	"context"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// ReviewRequestCreator opens pull requests on the hosting service.
type ReviewRequestCreator interface {
	// CreateReviewRequest opens req authenticated as account.
	CreateReviewRequest(ctx context.Context, account domain.Account, req domain.ReviewRequest) (*domain.ReviewRequestRef, error)
}
