package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock/items.
type CreateStockItemRequest struct {
	ProductID        string           `json:"product_id" validate:"required"`
	VariantID        string           `json:"variant_id,omitempty"`
	LocationID       string           `json:"location_id" validate:"required"`
	PhysicalQuantity decimal.Decimal  `json:"physical_quantity"`
	MinStock         *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock         *decimal.Decimal `json:"max_stock,omitempty"`
	ReorderPoint     *decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity  *decimal.Decimal `json:"reorder_quantity,omitempty"`
	ValuationMethod  string           `json:"valuation_method,omitempty" validate:"omitempty,oneof=standard fifo avco"`
}

// CreateStockMovementRequest body para POST /api/stock/movements.
type CreateStockMovementRequest struct {
	StockItemID         string          `json:"stock_item_id" validate:"required"`
	ProductID           string          `json:"product_id" validate:"required"`
	Quantity            decimal.Decimal `json:"quantity"`
	MovementType        string          `json:"movement_type" validate:"required,oneof=entry exit transfer adjustment"`
	LocationFromID      string          `json:"location_from_id,omitempty"`
	LocationToID        string          `json:"location_to_id,omitempty"`
	Reason              string          `json:"reason,omitempty"`
	RelatedDocumentType string          `json:"related_document_type,omitempty"`
	RelatedDocumentID   string          `json:"related_document_id,omitempty"`
}

// StockOperationRequest body para reserve/release/adjust.
type StockOperationRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	VariantID  string          `json:"variant_id,omitempty"`
	LocationID string          `json:"location_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
}

// TransferRequest body para POST /api/stock/transfer.
type TransferRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	VariantID      string          `json:"variant_id,omitempty"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
}

// StockItemResponse estado de un StockItem.
type StockItemResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	VariantID         string           `json:"variant_id,omitempty"`
	LocationID        string           `json:"location_id"`
	PhysicalQuantity  decimal.Decimal  `json:"physical_quantity"`
	ReservedQuantity  decimal.Decimal  `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal  `json:"available_quantity"`
	MinStock          *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock          *decimal.Decimal `json:"max_stock,omitempty"`
	ReorderPoint      *decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity   *decimal.Decimal `json:"reorder_quantity,omitempty"`
	ValuationMethod   string           `json:"valuation_method"`
	LastMovementAt    *time.Time       `json:"last_movement_at,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID                  string          `json:"id"`
	StockItemID         string          `json:"stock_item_id"`
	ProductID           string          `json:"product_id"`
	VariantID           string          `json:"variant_id,omitempty"`
	Quantity            decimal.Decimal `json:"quantity"`
	MovementType        string          `json:"movement_type"`
	LocationFromID      string          `json:"location_from_id,omitempty"`
	LocationToID        string          `json:"location_to_id,omitempty"`
	UserID              string          `json:"user_id"`
	Reason              string          `json:"reason,omitempty"`
	RelatedDocumentType string          `json:"related_document_type,omitempty"`
	RelatedDocumentID   string          `json:"related_document_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// LocationAvailability disponibilidad en una ubicación.
type LocationAvailability struct {
	LocationID        string          `json:"location_id"`
	StockItemID       string          `json:"stock_item_id"`
	PhysicalQuantity  decimal.Decimal `json:"physical_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
}

// AvailabilitySummary totales de un producto (y variante) en todas sus ubicaciones.
type AvailabilitySummary struct {
	ProductID      string                 `json:"product_id"`
	VariantID      string                 `json:"variant_id,omitempty"`
	TotalPhysical  decimal.Decimal        `json:"total_physical"`
	TotalReserved  decimal.Decimal        `json:"total_reserved"`
	TotalAvailable decimal.Decimal        `json:"total_available"`
	ByLocation     []LocationAvailability `json:"by_location"`
}

// ReservationResult resultado de reservar en una ubicación.
type ReservationResult struct {
	StockItemID      string          `json:"stock_item_id,omitempty"`
	LocationID       string          `json:"location_id,omitempty"`
	QuantityReserved decimal.Decimal `json:"quantity_reserved"`
	Success          bool            `json:"success"`
	Message          string          `json:"message"`
}

// TransferResult resultado de un traslado.
type TransferResult struct {
	CorrelationID          string          `json:"correlation_id"`
	ProductID              string          `json:"product_id"`
	VariantID              string          `json:"variant_id,omitempty"`
	FromLocationID         string          `json:"from_location_id"`
	ToLocationID           string          `json:"to_location_id"`
	Quantity               decimal.Decimal `json:"quantity"`
	SourceStockItemID      string          `json:"source_stock_item_id"`
	DestinationStockItemID string          `json:"destination_stock_item_id"`
	SourcePhysical         decimal.Decimal `json:"source_physical_quantity"`
	DestinationPhysical    decimal.Decimal `json:"destination_physical_quantity"`
	DestinationCreated     bool            `json:"destination_created"`
	MovementIDs            []string        `json:"movement_ids"`
}

// Niveles de urgencia de ReorderNeed.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
)

// ReorderNeed necesidad de reposición de un StockItem bajo su punto de reorden.
type ReorderNeed struct {
	StockItemID       string           `json:"stock_item_id"`
	ProductID         string           `json:"product_id"`
	VariantID         string           `json:"variant_id,omitempty"`
	LocationID        string           `json:"location_id"`
	PhysicalQuantity  decimal.Decimal  `json:"physical_quantity"`
	AvailableQuantity decimal.Decimal  `json:"available_quantity"`
	ReorderPoint      decimal.Decimal  `json:"reorder_point"`
	MinStock          *decimal.Decimal `json:"min_stock,omitempty"`
	Urgency           string           `json:"urgency"`
	SuggestedQuantity decimal.Decimal  `json:"suggested_quantity"`
}

// CreateLocationRequest body para POST /api/stock/locations.
type CreateLocationRequest struct {
	ID       string `json:"id" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name"`
	Type     string `json:"type" validate:"required,oneof=warehouse zone aisle shelf level virtual"`
	ParentID string `json:"parent_id,omitempty"`
	SiteID   string `json:"site_id,omitempty"`
}
