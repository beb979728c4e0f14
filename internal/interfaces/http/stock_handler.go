package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockHandler comandos y consultas del ledger.
type StockHandler struct {
	svc      *stock.Service
	validate *validator.Validate
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *stock.Service, validate *validator.Validate) *StockHandler {
	return &StockHandler{svc: svc, validate: validate}
}

// bind parsea y valida el body en dst.
func bind(c *fiber.Ctx, v *validator.Validate, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badBody(c)
	}
	if err := v.Struct(dst); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.CreateLocationRequest  true  "código, tipo y padre opcional"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/locations [post]
func (h *StockHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	loc := &entity.Location{
		ID:       in.ID,
		Code:     in.Code,
		Name:     in.Name,
		Type:     entity.LocationType(in.Type),
		ParentID: in.ParentID,
		SiteID:   in.SiteID,
		IsActive: true,
	}
	if err := h.svc.CreateLocation(c.UserContext(), loc); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": loc.ID, "code": loc.Code})
}

// CreateItem godoc
// @Summary      Crear StockItem
// @Description  El stock inicial queda registrado como movimiento de entrada.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.CreateStockItemRequest  true  "producto, variante, ubicación y stock inicial"
// @Success      201  {object}  dto.StockItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/items [post]
func (h *StockHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.CreateStockItem(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.CreateStockMovementRequest  true  "entry, exit o adjustment; los traslados van por /api/stock/transfer"
// @Success      201  {object}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.CreateStockMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de un StockItem
// @Tags         stock
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        id      path   string  true   "ID del StockItem"
// @Param        limit   query  int     false  "máximo 100 (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	page := pageFrom(c)
	out, err := h.svc.ListMovements(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "limit": page.Limit, "offset": page.Offset})
}

// Reserve godoc
// @Summary      Reservar stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.StockOperationRequest  true  "producto, ubicación y cantidad"
// @Success      200  {object}  dto.ReservationResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.Reserve(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Release godoc
// @Summary      Liberar reserva
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.StockOperationRequest  true  "producto, ubicación y cantidad"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/release [post]
func (h *StockHandler) Release(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.Release(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock físico
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.StockOperationRequest  true  "cantidad con signo y motivo"
// @Success      201  {object}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        body  body  dto.TransferRequest  true  "producto, origen, destino y cantidad"
// @Success      201  {object}  dto.TransferResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := bind(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.svc.Transfer(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Availability godoc
// @Summary      Disponibilidad por ubicación
// @Tags         stock
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        product_id  query  string  true   "producto"
// @Param        variant_id  query  string  false  "variante"
// @Success      200  {object}  dto.AvailabilitySummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.svc.GetAvailability(c.UserContext(), productID, c.Query("variant_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReorderNeeds godoc
// @Summary      Ítems bajo el punto de reorden
// @Tags         stock
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        location_id  query  string  false  "filtra por ubicación"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/reorder-needs [get]
func (h *StockHandler) ReorderNeeds(c *fiber.Ctx) error {
	out, err := h.svc.CheckReorderNeeds(c.UserContext(), c.Query("location_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// pageFrom lee ?limit=&offset= y los normaliza.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.Normalize()
	return page
}
