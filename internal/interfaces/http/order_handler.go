package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/order"
)

// OrderHandler alta de pedidos, transiciones de estado y recepciones de compra.
type OrderHandler struct {
	svc      *order.Service
	validate *validator.Validate
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *order.Service, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validate}
}

// Create godoc
// @Summary      Registrar pedido en draft
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.CreateOrderRequest  true  "número, ubicación preferida y líneas"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.CreateOrder(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transition godoc
// @Summary      Cambiar estado del pedido
// @Description  confirm reserva stock (reservation_outcome y reservation_results en la respuesta); ship consume las reservas.
// @Tags         orders
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
// @Router       /api/orders/{id}/prepare [post]
// @Router       /api/orders/{id}/ready [post]
// @Router       /api/orders/{id}/ship [post]
// @Router       /api/orders/{id}/deliver [post]
// @Router       /api/orders/{id}/invoice [post]
func (h *OrderHandler) Transition(action order.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.svc.Transition(c.UserContext(), c.Params("id"), action, "")
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Libera las reservas vigentes del pedido.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        id    path  string                  true   "ID del pedido"
// @Param        body  body  dto.CancelOrderRequest  false  "motivo"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if len(c.Body()) > 0 {
		if ok, err := bind(c, h.validate, &in); !ok {
			return err
		}
	}
	out, err := h.svc.Transition(c.UserContext(), c.Params("id"), order.ActionCancel, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordPurchase godoc
// @Summary      Registrar recepción de compra
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.PurchaseReceiptRequest  true  "documento, ubicación y líneas recibidas"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/purchases/receipts [post]
func (h *OrderHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseReceiptRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	if err := h.svc.RecordPurchase(c.UserContext(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "recepción registrada"})
}
