package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/outbox"
)

// OutboxHandler consulta y reencola dead letters del publicador.
type OutboxHandler struct {
	svc *outbox.DeadLetterService
}

// NewOutboxHandler construye el handler.
func NewOutboxHandler(svc *outbox.DeadLetterService) *OutboxHandler {
	return &OutboxHandler{svc: svc}
}

// ListDeadLetters godoc
// @Summary      Listar dead letters
// @Tags         outbox
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        limit   query  int  false  "máximo 100 (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/outbox/dead-letters [get]
func (h *OutboxHandler) ListDeadLetters(c *fiber.Ctx) error {
	page := pageFrom(c)
	out, err := h.svc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "limit": page.Limit, "offset": page.Offset})
}

// Replay godoc
// @Summary      Reencolar dead letter
// @Description  Cada dead letter se reencola una sola vez.
// @Tags         outbox
// @Produce      json
// @Param        X-User-ID  header  string  true  "usuario que ejecuta la operación"
// @Param        id  path  string  true  "ID del dead letter"
// @Success      202  {object}  dto.DeadLetterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbox/dead-letters/{id}/replay [post]
func (h *OutboxHandler) Replay(c *fiber.Ctx) error {
	out, err := h.svc.Replay(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}
