package events

import (
	"context"
	"fmt"

	"github.com/leaguehub/server/internal/shared/events"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handles returns the list of event types this handler can process.
	Handles() []string

	// Handle processes the given event.
	// Implementations should be idempotent - handling the same event twice
	// should not produce duplicate side effects.
	Handle(ctx context.Context, event events.Event) error
}

// HandlerFunc is a function type that implements Handler for a set of event types.
type HandlerFunc struct {
	eventTypes []string
	fn         func(context.Context, events.Event) error
}

// NewHandlerFunc creates a new HandlerFunc.
func NewHandlerFunc(eventTypes []string, fn func(context.Context, events.Event) error) *HandlerFunc {
	return &HandlerFunc{
		eventTypes: eventTypes,
		fn:         fn,
	}
}

// Handles returns the list of event types this handler can process.
func (h *HandlerFunc) Handles() []string {
	return h.eventTypes
}

// Handle processes the given event.
func (h *HandlerFunc) Handle(ctx context.Context, event events.Event) error {
	return h.fn(ctx, event)
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("event handler panicked: %v", e.Value)
}
