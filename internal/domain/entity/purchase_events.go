package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// PurchaseLine línea recibida de una compra.
type PurchaseLine struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PurchaseOrderReceived mercancía recibida contra una orden de compra.
type PurchaseOrderReceived struct {
	event.Base
	PurchaseOrderID string
	LocationID      string
	UserID          string
	Lines           []PurchaseLine
}

func (e PurchaseOrderReceived) EventName() string   { return "PurchaseOrderReceivedDomainEvent" }
func (e PurchaseOrderReceived) AggregateID() string { return e.PurchaseOrderID }

// PurchaseReceiptValidated recepción de compra validada en bodega.
type PurchaseReceiptValidated struct {
	event.Base
	ReceiptID  string
	LocationID string
	UserID     string
	Lines      []PurchaseLine
}

func (e PurchaseReceiptValidated) EventName() string   { return "PurchaseReceiptValidatedDomainEvent" }
func (e PurchaseReceiptValidated) AggregateID() string { return e.ReceiptID }
