package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// HeaderUserID identidad del llamador; la autenticación la resuelve el gateway.
const HeaderUserID = "X-User-ID"

// LocalUserID key en c.Locals.
const LocalUserID = "user_id"

// RequireUser exige X-User-ID y lo deja en c.Locals para que los movimientos queden atribuidos.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_USER",
				Message: HeaderUserID + " header requerido",
			})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID devuelve el usuario del contexto (después de RequireUser).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
