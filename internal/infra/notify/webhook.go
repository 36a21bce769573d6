// Package notify delivers membership events to an external notification service.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/shared/events"
	"github.com/leaguehub/server/internal/utils/metrics"
)

// Delivery statuses recorded in metrics.
const (
	statusSent     = "sent"
	statusFailed   = "failed"
	statusRejected = "rejected" // breaker open
)

// Envelope is the JSON body posted for every event.
type Envelope struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	OccurredAt    time.Time    `json:"occurred_at"`
	AggregateType string       `json:"aggregate_type"`
	AggregateID   string       `json:"aggregate_id"`
	RecipientID   string       `json:"recipient_id,omitempty"`
	Payload       events.Event `json:"payload"`
}

// WebhookHandler forwards events to a webhook through a circuit breaker.
// It implements the event bus Handler interface.
type WebhookHandler struct {
	url     string
	timeout time.Duration
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(cfg *config.NotifyConfig, client *http.Client, m *metrics.Metrics, logger *zap.Logger) *WebhookHandler {
	failureThreshold := cfg.FailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "notify-webhook",
		MaxRequests: cfg.SuccessThreshold,
		Interval:    60 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &WebhookHandler{
		url:     cfg.WebhookURL,
		timeout: timeout,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		metrics: m,
		logger:  logger,
	}
}

// Handles returns every membership event type.
func (h *WebhookHandler) Handles() []string {
	return events.MembershipEventTypes()
}

// Handle posts the event. Errors are reported to the bus, which logs them.
// Delivery outlives the request that produced the event but not the timeout.
func (h *WebhookHandler) Handle(ctx context.Context, event events.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	meta := event.Meta()
	body, err := json.Marshal(newEnvelope(meta, event))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = h.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, h.post(ctx, meta.Type, body)
	})
	switch {
	case err == nil:
		h.metrics.RecordNotification(meta.Type, statusSent)
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		h.metrics.RecordNotification(meta.Type, statusRejected)
		return fmt.Errorf("deliver %s: %w", meta.Type, err)
	default:
		h.metrics.RecordNotification(meta.Type, statusFailed)
		return fmt.Errorf("deliver %s: %w", meta.Type, err)
	}
}

func (h *WebhookHandler) post(ctx context.Context, eventType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", eventType)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// State returns the breaker state.
func (h *WebhookHandler) State() gobreaker.State {
	return h.breaker.State()
}

func newEnvelope(meta events.Metadata, payload events.Event) Envelope {
	env := Envelope{
		ID:            meta.ID.String(),
		Type:          meta.Type,
		OccurredAt:    meta.OccurredAt,
		AggregateType: meta.AggregateType,
		AggregateID:   meta.AggregateID.String(),
		Payload:       payload,
	}
	if meta.Addressed() {
		env.RecipientID = meta.RecipientID.String()
	}
	return env
}
