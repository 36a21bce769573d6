package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leaguehub/server/internal/shared/events"
	"github.com/leaguehub/server/internal/utils/requestctx"
)

func newTestEvent(eventType string) events.Event {
	return events.NewJoinRequestEvent(eventType, uuid.New(), uuid.New(), uuid.New(), uuid.New(), "Falcons")
}

func TestBus_Publish(t *testing.T) {
	t.Run("dispatches to handlers of the event type", func(t *testing.T) {
		bus := NewBus(zap.NewNop())

		var got []string
		bus.Register(NewHandlerFunc([]string{events.JoinRequestApprovedType}, func(_ context.Context, e events.Event) error {
			got = append(got, e.Meta().Type)
			return nil
		}))
		bus.Register(NewHandlerFunc([]string{events.JoinRequestDeclinedType}, func(_ context.Context, e events.Event) error {
			got = append(got, "unexpected")
			return nil
		}))

		bus.Publish(context.Background(), newTestEvent(events.JoinRequestApprovedType))

		assert.Equal(t, []string{events.JoinRequestApprovedType}, got)
	})

	t.Run("failing handler does not stop the others", func(t *testing.T) {
		bus := NewBus(zap.NewNop())

		calls := 0
		bus.Register(NewHandlerFunc([]string{events.JoinRequestCreatedType}, func(context.Context, events.Event) error {
			calls++
			return errors.New("webhook down")
		}))
		bus.Register(NewHandlerFunc([]string{events.JoinRequestCreatedType}, func(context.Context, events.Event) error {
			panic("boom")
		}))
		bus.Register(NewHandlerFunc([]string{events.JoinRequestCreatedType}, func(context.Context, events.Event) error {
			calls++
			return nil
		}))

		assert.NotPanics(t, func() {
			bus.Publish(context.Background(), newTestEvent(events.JoinRequestCreatedType))
		})
		assert.Equal(t, 2, calls)
	})

	t.Run("no handlers", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		assert.NotPanics(t, func() {
			bus.Publish(context.Background(), newTestEvent(events.CaptainRequestApprovedType))
		})
	})
}

func TestBus_Subscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Register(NewHandlerFunc(events.MembershipEventTypes(), func(context.Context, events.Event) error { return nil }))
	bus.Register(NewHandlerFunc([]string{events.JoinRequestApprovedType}, func(context.Context, events.Event) error { return nil }))

	assert.Equal(t, 2, bus.Subscribers(events.JoinRequestApprovedType))
	assert.Equal(t, 1, bus.Subscribers(events.CaptainRequestRejectedType))
	assert.Zero(t, bus.Subscribers("Unknown"))
}

func TestBus_LogsFailuresWithRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := NewBus(zap.New(core))
	bus.Register(NewHandlerFunc([]string{events.JoinRequestDeclinedType}, func(context.Context, events.Event) error {
		return errors.New("notification service unavailable")
	}))

	ctx := requestctx.WithRequestID(context.Background(), "req-42")
	bus.Publish(ctx, newTestEvent(events.JoinRequestDeclinedType))

	failures := logs.FilterMessage("event handler failed").All()
	if assert.Len(t, failures, 1) {
		fields := failures[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, events.JoinRequestDeclinedType, fields["event_type"])
	}
}
