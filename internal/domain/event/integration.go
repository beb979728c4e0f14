package event

import "github.com/shopspring/decimal"

// Eventos de integración publicados por el ledger. El nombre del tipo define la
// routing key: OrderStockReservedIntegrationEvent → order.stock.reserved.
// decimal.Decimal se serializa como string y time.Time como RFC 3339.

// StockLevelChangedIntegrationEvent nuevo nivel de un StockItem.
type StockLevelChangedIntegrationEvent struct {
	Base
	StockItemID string          `json:"stock_item_id"`
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id,omitempty"`
	LocationID  string          `json:"location_id"`
	Operation   string          `json:"operation"`
	Quantity    decimal.Decimal `json:"quantity"`
	Physical    decimal.Decimal `json:"physical_quantity"`
	Reserved    decimal.Decimal `json:"reserved_quantity"`
	Available   decimal.Decimal `json:"available_quantity"`
}

func (StockLevelChangedIntegrationEvent) EventType() string {
	return "StockLevelChangedIntegrationEvent"
}

// StockReorderPointReachedIntegrationEvent alerta de reposición.
type StockReorderPointReachedIntegrationEvent struct {
	Base
	StockItemID     string           `json:"stock_item_id"`
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id,omitempty"`
	LocationID      string           `json:"location_id"`
	Available       decimal.Decimal  `json:"available_quantity"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity,omitempty"`
}

func (StockReorderPointReachedIntegrationEvent) EventType() string {
	return "StockReorderPointReachedIntegrationEvent"
}

// StockTransferredIntegrationEvent traslado entre ubicaciones.
type StockTransferredIntegrationEvent struct {
	Base
	CorrelationID  string          `json:"correlation_id"`
	ProductID      string          `json:"product_id"`
	VariantID      string          `json:"variant_id,omitempty"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
}

func (StockTransferredIntegrationEvent) EventType() string {
	return "StockTransferredIntegrationEvent"
}

// ReservationPortionPayload porción reservada/liberada/consumida en una ubicación.
type ReservationPortionPayload struct {
	ReservationID string          `json:"reservation_id"`
	StockItemID   string          `json:"stock_item_id"`
	LocationID    string          `json:"location_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// LineReservationPayload detalle por línea de pedido.
type LineReservationPayload struct {
	OrderLineID string                      `json:"order_line_id"`
	ProductID   string                      `json:"product_id"`
	VariantID   string                      `json:"variant_id,omitempty"`
	Requested   decimal.Decimal             `json:"requested_quantity"`
	Reserved    decimal.Decimal             `json:"reserved_quantity"`
	Outcome     string                      `json:"outcome"`
	Portions    []ReservationPortionPayload `json:"portions"`
}

// OrderStockReservedIntegrationEvent resultado de reservar un pedido confirmado.
type OrderStockReservedIntegrationEvent struct {
	Base
	OrderID string                   `json:"order_id"`
	Outcome string                   `json:"outcome"`
	Lines   []LineReservationPayload `json:"lines"`
}

func (OrderStockReservedIntegrationEvent) EventType() string {
	return "OrderStockReservedIntegrationEvent"
}

// OrderStockReleasedIntegrationEvent reservas liberadas.
type OrderStockReleasedIntegrationEvent struct {
	Base
	OrderID  string                      `json:"order_id"`
	Portions []ReservationPortionPayload `json:"portions"`
}

func (OrderStockReleasedIntegrationEvent) EventType() string {
	return "OrderStockReleasedIntegrationEvent"
}

// OrderStockFulfilledIntegrationEvent reservas consumidas al despachar.
type OrderStockFulfilledIntegrationEvent struct {
	Base
	OrderID  string                      `json:"order_id"`
	Portions []ReservationPortionPayload `json:"portions"`
}

func (OrderStockFulfilledIntegrationEvent) EventType() string {
	return "OrderStockFulfilledIntegrationEvent"
}
