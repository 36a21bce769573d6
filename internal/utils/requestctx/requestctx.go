// Package requestctx carries request-scoped identifiers through context.Context
// so code below the HTTP layer can tag logs and outgoing calls.
package requestctx

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorIDKey
)

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// WithActorID returns a context carrying the authenticated user.
func WithActorID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorIDKey, userID)
}

// ActorID returns the authenticated user, or uuid.Nil.
func ActorID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(actorIDKey).(uuid.UUID)
	return id
}

// Fields returns the identifiers present on ctx as log fields.
func Fields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := ActorID(ctx); id != uuid.Nil {
		fields = append(fields, zap.String("actor_id", id.String()))
	}
	return fields
}
