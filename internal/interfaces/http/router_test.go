package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/order"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore(time.Second)
	ledger := stock.NewLedger(nil)
	dispatcher := outbox.NewDispatcher(zerolog.Nop())
	dispatcher.Register(stock.NewEventHandler())
	dispatcher.Register(order.NewStockReactions(ledger, order.PolicyPartial, zerolog.Nop()))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Stock:       stock.NewService(store, ledger, dispatcher, zerolog.Nop()),
		Orders:      order.NewService(store, dispatcher, zerolog.Nop()),
		DeadLetters: outbox.NewDeadLetterService(store, zerolog.Nop()),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderUserID, testUserID)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func seedLocations(t *testing.T, app *fiber.App, ids ...string) {
	t.Helper()
	for _, id := range ids {
		resp, body := call(t, app, http.MethodPost, "/api/stock/locations",
			`{"id":"`+id+`","code":"`+id+`","type":"warehouse"}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}
}

func TestRouter_Health(t *testing.T) {
	app := buildTestApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_SinUsuarioDevuelve401(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/api/stock/availability?product_id=P1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_USER", body.Code)
}

func TestRouter_CrearItemYReservar(t *testing.T) {
	app := buildTestApp()
	seedLocations(t, app, "A")

	resp, raw := call(t, app, http.MethodPost, "/api/stock/items",
		`{"product_id":"P1","location_id":"A","physical_quantity":"100"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var item dto.StockItemResponse
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, "100", item.AvailableQuantity.String())

	resp, raw = call(t, app, http.MethodPost, "/api/stock/reserve",
		`{"product_id":"P1","location_id":"A","quantity":"30"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/stock/reserve",
		`{"product_id":"P1","location_id":"A","quantity":"80"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errBody))
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Equal(t, "Insufficient available stock. Available: 70, Requested: 80", errBody.Message)

	resp, raw = call(t, app, http.MethodGet, "/api/stock/items/"+item.ID+"/movements", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var page struct {
		Items []dto.StockMovementResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, testUserID, page.Items[0].UserID)
}

func TestRouter_ErroresDeValidacionYNoEncontrado(t *testing.T) {
	app := buildTestApp()
	seedLocations(t, app, "A")

	resp, _ := call(t, app, http.MethodPost, "/api/stock/items", `{"location_id":"A"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/stock/items", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/stock/locations", `{"id":"X","code":"X","type":"galaxy"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/stock/locations", `{"id":"A","code":"A","type":"zone"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/stock/transfer",
		`{"product_id":"P1","from_location_id":"A","to_location_id":"A","quantity":"1"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/stock/availability", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/orders/missing/confirm", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/outbox/dead-letters/missing/replay", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_FlujoDePedido(t *testing.T) {
	app := buildTestApp()
	seedLocations(t, app, "A", "B")
	resp, raw := call(t, app, http.MethodPost, "/api/stock/items",
		`{"product_id":"P1","location_id":"B","physical_quantity":"10"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodPost, "/api/orders",
		`{"number":"SO-1","preferred_location_id":"A","lines":[{"product_id":"P1","quantity":"4"}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var o dto.OrderResponse
	require.NoError(t, json.Unmarshal(raw, &o))

	resp, raw = call(t, app, http.MethodPost, "/api/orders/"+o.ID+"/confirm", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &o))
	require.Len(t, o.Reservations, 1)
	assert.Equal(t, "B", o.Reservations[0].LocationID)

	resp, raw = call(t, app, http.MethodPost, "/api/orders/"+o.ID+"/cancel", `{"reason":"duplicado"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &o))
	assert.Equal(t, "canceled", o.Status)

	resp, raw = call(t, app, http.MethodGet, "/api/stock/availability?product_id=P1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var sum dto.AvailabilitySummary
	require.NoError(t, json.Unmarshal(raw, &sum))
	assert.Equal(t, "10", sum.TotalAvailable.String())

	resp, _ = call(t, app, http.MethodPost, "/api/orders/"+o.ID+"/ship", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/api/purchases/receipts",
		`{"document_type":"purchase_receipt","document_id":"R-1","location_id":"A","lines":[{"product_id":"P1","quantity":"5"}]}`)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode, string(raw))
}

func TestDocs_CubrenTodasLasRutasDeLaAPI(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	app := buildTestApp()
	for _, r := range app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == fiber.MethodHead {
			continue
		}
		path := strings.TrimSuffix(regexp.MustCompile(`:(\w+)`).ReplaceAllString(r.Path, "{$1}"), "/")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "ruta sin documentar: %s %s", r.Method, path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "método sin documentar: %s %s", r.Method, path)
		}
	}
}
