package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/order"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock       *stock.Service
	Orders      *order.Service
	DeadLetters *outbox.DeadLetterService
	Validate    *validator.Validate
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", RequireUser())

	stockHandler := NewStockHandler(deps.Stock, deps.Validate)
	st := api.Group("/stock")
	st.Post("/locations", stockHandler.CreateLocation)
	st.Post("/items", stockHandler.CreateItem)
	st.Get("/items/:id/movements", stockHandler.ListMovements)
	st.Post("/movements", stockHandler.CreateMovement)
	st.Post("/reserve", stockHandler.Reserve)
	st.Post("/release", stockHandler.Release)
	st.Post("/adjust", stockHandler.Adjust)
	st.Post("/transfer", stockHandler.Transfer)
	st.Get("/availability", stockHandler.Availability)
	st.Get("/reorder-needs", stockHandler.ReorderNeeds)

	orderHandler := NewOrderHandler(deps.Orders, deps.Validate)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Post("/:id/confirm", orderHandler.Transition(order.ActionConfirm))
	orders.Post("/:id/prepare", orderHandler.Transition(order.ActionPrepare))
	orders.Post("/:id/ready", orderHandler.Transition(order.ActionReady))
	orders.Post("/:id/ship", orderHandler.Transition(order.ActionShip))
	orders.Post("/:id/deliver", orderHandler.Transition(order.ActionDeliver))
	orders.Post("/:id/invoice", orderHandler.Transition(order.ActionInvoice))
	orders.Post("/:id/cancel", orderHandler.Cancel)

	api.Post("/purchases/receipts", orderHandler.RecordPurchase)

	outboxHandler := NewOutboxHandler(deps.DeadLetters)
	api.Get("/outbox/dead-letters", outboxHandler.ListDeadLetters)
	api.Post("/outbox/dead-letters/:id/replay", outboxHandler.Replay)
}
