package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// MovementType tipo de movimiento del ledger.
type MovementType string

const (
	MovementEntry      MovementType = "entry"      // entrada
	MovementExit       MovementType = "exit"       // salida
	MovementTransfer   MovementType = "transfer"   // traslado entre ubicaciones
	MovementAdjustment MovementType = "adjustment" // ajuste
)

// Tipos de documento relacionado (referencia débil, solo para consulta).
const (
	DocumentOrder           = "order"
	DocumentPurchaseOrder   = "purchase_order"
	DocumentPurchaseReceipt = "purchase_receipt"
)

// StockMovement registro inmutable de auditoría: un cambio con signo y su causa.
// Quantity positiva = entrada, negativa = salida. Nunca se actualiza ni se borra.
type StockMovement struct {
	ID                  string
	StockItemID         string
	ProductID           string
	VariantID           string
	Quantity            decimal.Decimal
	Type                MovementType
	LocationFromID      string
	LocationToID        string
	UserID              string
	Reason              string
	RelatedDocumentType string
	RelatedDocumentID   string
	CorrelationID       string // enlaza las dos patas de un traslado
	CreatedAt           time.Time
}

// ValidateShape verifica ubicaciones y signo según el tipo:
// transfer requiere origen y destino distintos; entry requiere destino; exit requiere origen.
func (m *StockMovement) ValidateShape() error {
	if m.Quantity.IsZero() {
		return domain.InvalidInput("movement quantity must not be zero")
	}
	switch m.Type {
	case MovementTransfer:
		if m.LocationFromID == "" || m.LocationToID == "" {
			return domain.InvalidMovementShape("transfer requires both location_from and location_to")
		}
		if m.LocationFromID == m.LocationToID {
			return domain.InvalidMovementShape("transfer locations must be distinct, got %s twice", m.LocationFromID)
		}
	case MovementEntry:
		if m.LocationToID == "" {
			return domain.InvalidMovementShape("entry requires location_to")
		}
		if m.Quantity.IsNegative() {
			return domain.InvalidMovementShape("entry quantity must be positive")
		}
	case MovementExit:
		if m.LocationFromID == "" {
			return domain.InvalidMovementShape("exit requires location_from")
		}
		if m.Quantity.IsPositive() {
			return domain.InvalidMovementShape("exit quantity must be negative")
		}
	case MovementAdjustment:
		if m.LocationFromID == "" && m.LocationToID == "" {
			return domain.InvalidMovementShape("adjustment requires a location")
		}
	default:
		return domain.InvalidMovementShape("unknown movement type %q", string(m.Type))
	}
	return nil
}
