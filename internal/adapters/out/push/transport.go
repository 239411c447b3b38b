// Package push delivers notification events to the external push gateway.
// The gateway fans events out to device push and the in-app badge feed; this
// adapter only speaks its webhook contract.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"qatmarket/internal/core/domain/model/notification"
)

var ErrEndpointIsRequired = errors.New("push gateway endpoint is required")

// eventPayload is the webhook body the gateway expects.
type eventPayload struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	EventType   string            `json:"event_type"`
	OrderID     *string           `json:"order_id,omitempty"`
	Payload     map[string]string `json:"payload"`
	CreatedAt   time.Time         `json:"created_at"`
}

// WebhookTransport pushes notification events to the gateway over HTTP.
// Every push is bounded by the configured timeout so a slow gateway can
// never stall the delivery job; a non-2xx response or transport error
// leaves the event queued for retry.
type WebhookTransport struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewWebhookTransport creates a transport that posts events to endpoint.
func NewWebhookTransport(endpoint string, timeout time.Duration, logger *slog.Logger) (*WebhookTransport, error) {
	if endpoint == "" {
		return nil, ErrEndpointIsRequired
	}

	return &WebhookTransport{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("component", "push_transport"),
	}, nil
}

// Push delivers a single event to the gateway.
func (t *WebhookTransport) Push(ctx context.Context, event *notification.Notification) error {
	if err := event.Validate(); err != nil {
		return err
	}

	payload := eventPayload{
		ID:          event.ID().String(),
		RecipientID: event.RecipientID().String(),
		EventType:   event.Type().String(),
		Payload:     event.Payload(),
		CreatedAt:   event.CreatedAt(),
	}
	if orderID := event.OrderID(); orderID != nil {
		s := orderID.String()
		payload.OrderID = &s
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push gateway responded with status %d", resp.StatusCode)
	}

	t.logger.DebugContext(ctx, "Notification pushed",
		"notification_id", event.ID().String(),
		"event_type", event.Type().String(),
	)
	return nil
}
