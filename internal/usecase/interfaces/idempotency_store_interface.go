package interfaces

import "context"

// IIdempotencyStore guards startPayment against duplicate references.
type IIdempotencyStore interface {
	// CheckOrSetInProgress returns true when the reference is already in
	// progress or completed; otherwise it marks it in progress.
	CheckOrSetInProgress(ctx context.Context, reference string) (bool, error)
	SetCompleted(ctx context.Context, reference string) error
	// Release drops an in-progress mark so a failed payment can be retried.
	Release(ctx context.Context, reference string) error
}
