package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CancelOrderRequest body opcional de POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ReservationResponse reserva de stock de una línea.
type ReservationResponse struct {
	ID          string          `json:"id"`
	OrderLineID string          `json:"order_line_id"`
	StockItemID string          `json:"stock_item_id"`
	LocationID  string          `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	ReservedAt  time.Time       `json:"reserved_at"`
	ReleasedAt  *time.Time      `json:"released_at,omitempty"`
}

// OrderResponse estado del pedido tras una transición.
// En confirm incluye el resultado de la reserva: reserved, partial o failed, y el detalle por ubicación.
type OrderResponse struct {
	ID                 string                `json:"id"`
	Number             string                `json:"number"`
	Status             string                `json:"status"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
	Reservations       []ReservationResponse `json:"reservations"`
	ReservationOutcome string                `json:"reservation_outcome,omitempty"`
	ReservationResults []ReservationResult   `json:"reservation_results,omitempty"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// PurchaseLineRequest línea recibida.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PurchaseReceiptRequest body de POST /api/purchases/receipts.
// DocumentType purchase_order (mercancía recibida contra la OC) o purchase_receipt (recepción validada).
type PurchaseReceiptRequest struct {
	DocumentType string                `json:"document_type" validate:"required,oneof=purchase_order purchase_receipt"`
	DocumentID   string                `json:"document_id" validate:"required"`
	LocationID   string                `json:"location_id" validate:"required"`
	TenantID     string                `json:"tenant_id,omitempty"`
	Lines        []PurchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// OrderLineRequest línea de pedido.
type OrderLineRequest struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"product_id" validate:"required"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body de POST /api/orders. El pedido nace en draft.
type CreateOrderRequest struct {
	ID                  string             `json:"id,omitempty"`
	Number              string             `json:"number" validate:"required"`
	TenantID            string             `json:"tenant_id,omitempty"`
	PreferredLocationID string             `json:"preferred_location_id,omitempty"`
	Lines               []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}
