package dto

import (
	"encoding/json"
	"time"
)

// DeadLetterResponse evento de outbox que agotó reintentos.
type DeadLetterResponse struct {
	ID            string          `json:"id"`
	OutboxEventID string          `json:"outbox_event_id"`
	EventType     string          `json:"event_type"`
	EventData     json.RawMessage `json:"event_data"`
	OccurredOn    time.Time       `json:"occurred_on"`
	TenantID      string          `json:"tenant_id,omitempty"`
	RetryCount    int             `json:"retry_count"`
	LastError     string          `json:"last_error"`
	FailedAt      time.Time       `json:"failed_at"`
	ReplayedAt    *time.Time      `json:"replayed_at,omitempty"`
}
