package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/shared/events"
	"github.com/leaguehub/server/internal/shared/logger"
)

// Bus delivers membership events to the handlers registered for their type.
// Delivery is synchronous and best-effort: handler failures are logged, never
// returned, so a committed transition is never reported as failed.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register subscribes handler to every type it handles.
func (b *Bus) Register(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range handler.Handles() {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
	}
}

// Subscribers returns the number of handlers registered for eventType.
func (b *Bus) Subscribers(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish runs every handler for the event in registration order.
func (b *Bus) Publish(ctx context.Context, event events.Event) {
	meta := event.Meta()

	b.mu.RLock()
	handlers := b.handlers[meta.Type]
	b.mu.RUnlock()

	log := logger.FromContext(ctx, b.logger).With(
		zap.String("event_type", meta.Type),
		zap.String("event_id", meta.ID.String()),
	)
	if len(handlers) == 0 {
		log.Debug("event has no subscribers")
		return
	}

	for _, handler := range handlers {
		if err := b.dispatch(ctx, handler, event); err != nil {
			log.Error("event handler failed",
				zap.String("aggregate_id", meta.AggregateID.String()),
				zap.Error(err),
			)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, handler Handler, event events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return handler.Handle(ctx, event)
}
