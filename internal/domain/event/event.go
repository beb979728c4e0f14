// Package event define los contratos de eventos de dominio (en proceso) y de
// integración (hacia otros servicios vía outbox).
package event

import "time"

// DomainEvent hecho ocurrido dentro de un agregado durante una unidad de trabajo.
// Los métodos de los agregados los devuelven explícitamente junto al error.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredOn() time.Time
}

// IntegrationEvent evento destinado a consumidores externos. Se serializa a JSON
// y se guarda en outbox_events dentro de la transacción de negocio.
type IntegrationEvent interface {
	EventType() string
	OccurredOn() time.Time
	TenantID() string
}

// Base campos comunes embebibles en eventos de dominio e integración.
type Base struct {
	ID       string    `json:"event_id"`
	Occurred time.Time `json:"occurred_on"`
	Tenant   string    `json:"tenant_id,omitempty"`
}

func (b Base) OccurredOn() time.Time { return b.Occurred }

func (b Base) TenantID() string { return b.Tenant }
