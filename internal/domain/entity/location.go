package entity

import "time"

// LocationType nivel jerárquico de una ubicación física o lógica.
type LocationType string

const (
	LocationWarehouse LocationType = "warehouse"
	LocationZone      LocationType = "zone"
	LocationAisle     LocationType = "aisle"
	LocationShelf     LocationType = "shelf"
	LocationLevel     LocationType = "level"
	LocationVirtual   LocationType = "virtual"
)

// Valid indica si el tipo pertenece al catálogo.
func (t LocationType) Valid() bool {
	switch t {
	case LocationWarehouse, LocationZone, LocationAisle, LocationShelf, LocationLevel, LocationVirtual:
		return true
	}
	return false
}

// Location nodo del árbol de ubicaciones (bodega > zona > pasillo > estante > nivel).
// Dato de referencia para el ledger: posee cero o más StockItems.
type Location struct {
	ID        string
	Code      string
	Name      string
	Type      LocationType
	ParentID  string // vacío = raíz
	SiteID    string // opcional
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
