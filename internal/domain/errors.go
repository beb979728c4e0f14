package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio del ledger (sin dependencias de infraestructura).
var (
	ErrNotFound                = errors.New("resource not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrDuplicate               = errors.New("duplicate resource")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInsufficientReservation = errors.New("insufficient reservation")
	ErrNegativeStock           = errors.New("negative stock")
	ErrReservedExceedsPhysical = errors.New("reserved quantity exceeds physical quantity")
	ErrInvariantViolation      = errors.New("stock invariant violation")
	ErrInvalidMovementShape    = errors.New("invalid movement shape")
	ErrSourceNotFound          = errors.New("source stock item not found")
	ErrInvalidTransition       = errors.New("invalid order status transition")
	ErrLockTimeout             = errors.New("timed out waiting for stock row lock")
)

// StockError error descriptivo apto para mostrar al usuario.
// Kind es uno de los sentinels de arriba, así errors.Is sigue funcionando.
type StockError struct {
	Kind    error
	Rule    string // código RG-STOCK-00x cuando aplica
	Message string
}

func (e *StockError) Error() string { return e.Message }

func (e *StockError) Unwrap() error { return e.Kind }

func newStockError(kind error, format string, args ...any) *StockError {
	return &StockError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStock "Insufficient available stock. Available: X, Requested: Y".
func InsufficientStock(available, requested decimal.Decimal) error {
	return newStockError(ErrInsufficientStock,
		"Insufficient available stock. Available: %s, Requested: %s", available.String(), requested.String())
}

// InsufficientReservation reserva menor que la cantidad a liberar.
func InsufficientReservation(reserved, requested decimal.Decimal) error {
	return newStockError(ErrInsufficientReservation,
		"Insufficient reserved stock. Reserved: %s, Requested: %s", reserved.String(), requested.String())
}

// NegativeStock el ajuste dejaría stock físico negativo.
func NegativeStock(physical, delta decimal.Decimal) error {
	return newStockError(ErrNegativeStock,
		"Adjustment would result in negative stock. Physical: %s, Adjustment: %s", physical.String(), delta.String())
}

// ReservedExceedsPhysical el nuevo físico quedaría por debajo de lo reservado.
func ReservedExceedsPhysical(newPhysical, reserved decimal.Decimal) error {
	return newStockError(ErrReservedExceedsPhysical,
		"Physical quantity %s would fall below reserved quantity %s", newPhysical.String(), reserved.String())
}

// InvariantViolation regla RG-STOCK-00x incumplida después de mutar.
func InvariantViolation(rule, detail string) error {
	e := newStockError(ErrInvariantViolation, "%s violated: %s", rule, detail)
	e.Rule = rule
	return e
}

// InvalidMovementShape ubicaciones ausentes o duplicadas para el tipo de movimiento.
func InvalidMovementShape(format string, args ...any) error {
	return newStockError(ErrInvalidMovementShape, format, args...)
}

// InvalidInput entrada rechazada antes de tocar el ledger.
func InvalidInput(format string, args ...any) error {
	return newStockError(ErrInvalidInput, format, args...)
}

// NotFound recurso inexistente (StockItem, Location, Order...).
func NotFound(kind, id string) error {
	return newStockError(ErrNotFound, "%s %s not found", kind, id)
}
