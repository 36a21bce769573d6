package outbound

import (
	"context"
	"time"

	"github.com/leaguehub/server/internal/shared/events"
)

// EventPublisherPort defines event publishing operations.
type EventPublisherPort interface {
	// Publish publishes a domain event. Delivery failures are not reported to the caller.
	Publish(ctx context.Context, event events.Event)
}

// RateLimiterPort defines rate limiting operations.
type RateLimiterPort interface {
	// Allow checks if a request is allowed within rate limits.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// GetRemaining returns remaining requests in window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}
