package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed webhook notification IDs so the same
// provider notification is acted on once even when it is delivered again
type IdempotencyStore interface {
	// MarkProcessed marks a notification as processed with a TTL.
	// Returns true if newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a notification has already been processed
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// DefaultIdempotencyTTL is how long processed notification IDs are retained.
// The provider retries failed deliveries for roughly two days.
const DefaultIdempotencyTTL = 48 * time.Hour
