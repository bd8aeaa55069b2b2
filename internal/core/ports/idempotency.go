package ports

import "context"

// IdempotencyStore remembers which resource a create request produced so a
// retried request with the same key returns the same resource.
type IdempotencyStore interface {
	// Reserve claims key within scope. When the key already completed it
	// returns the stored resource id and reserved=false. When another request
	// holds the key it returns domain.ErrRequestInProgress.
	Reserve(ctx context.Context, scope, key string) (resourceID string, reserved bool, err error)
	// Complete records the resource id produced for a reserved key.
	Complete(ctx context.Context, scope, key, resourceID string) error
	// Release drops a reservation whose request failed.
	Release(ctx context.Context, scope, key string) error
}
