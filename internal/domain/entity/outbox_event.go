package entity

import (
	"encoding/json"
	"time"
)

// OutboxEvent evento de integración persistido en la misma transacción que el cambio de negocio.
// Solo el publicador lo modifica; nunca se borra.
type OutboxEvent struct {
	ID           string
	EventType    string
	EventData    json.RawMessage
	OccurredOn   time.Time
	TenantID     string
	IsProcessed  bool
	ProcessedOn  *time.Time
	RetryCount   int
	ErrorMessage string
	CreatedAt    time.Time
}

// OutboxDeadLetter copia de un evento que agotó reintentos; se puede reencolar.
type OutboxDeadLetter struct {
	ID            string
	OutboxEventID string
	EventType     string
	EventData     json.RawMessage
	OccurredOn    time.Time
	TenantID      string
	RetryCount    int
	LastError     string
	FailedAt      time.Time
	ReplayedAt    *time.Time
}
