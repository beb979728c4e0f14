package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	stockrules "github.com/jhoicas/stock-ledger/internal/domain/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

const user = "user-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

type fixture struct {
	store *memory.Store
	svc   *stock.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLedger(t, stock.NewLedger(nil))
}

func newFixtureWithLedger(t *testing.T, ledger *stock.Ledger) *fixture {
	t.Helper()
	store := memory.NewStore(time.Second)
	dispatcher := outbox.NewDispatcher(zerolog.Nop())
	dispatcher.Register(stock.NewEventHandler())
	svc := stock.NewService(store, ledger, dispatcher, zerolog.Nop())
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, svc.CreateLocation(context.Background(), &entity.Location{ID: id, Code: id, Type: entity.LocationWarehouse}))
	}
	return &fixture{store: store, svc: svc}
}

func (f *fixture) item(t *testing.T, product, location, physical string) *dto.StockItemResponse {
	t.Helper()
	it, err := f.svc.CreateStockItem(context.Background(), user, dto.CreateStockItemRequest{
		ProductID: product, LocationID: location, PhysicalQuantity: d(physical),
	})
	require.NoError(t, err)
	return it
}

func (f *fixture) get(t *testing.T, product, location string) *entity.StockItem {
	t.Helper()
	var out *entity.StockItem
	require.NoError(t, f.store.Run(context.Background(), func(tx repository.Tx) error {
		var err error
		out, err = tx.StockItems.GetByKeyForUpdate(context.Background(), entity.StockKey{ProductID: product, LocationID: location})
		return err
	}))
	return out
}

func (f *fixture) outboxTypes(t *testing.T) []string {
	t.Helper()
	var types []string
	require.NoError(t, f.store.Run(context.Background(), func(tx repository.Tx) error {
		rows, err := tx.Outbox.FetchPending(context.Background(), 1000)
		for _, r := range rows {
			types = append(types, r.EventType)
		}
		return err
	}))
	return types
}

func op(product, location, qty string) dto.StockOperationRequest {
	return dto.StockOperationRequest{ProductID: product, LocationID: location, Quantity: d(qty)}
}

func TestService_ReservarDescuentaDisponible(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "100")

	res, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "30"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.QuantityReserved.Equal(d("30")))

	it := f.get(t, "P1", "A")
	assert.True(t, it.PhysicalQuantity.Equal(d("100")))
	assert.True(t, it.ReservedQuantity.Equal(d("30")))
	assert.True(t, it.Available().Equal(d("70")))
}

func TestService_ReservarMasDeLoDisponibleFallaSinCambios(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "100")
	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "30"))
	require.NoError(t, err)
	before := len(f.outboxTypes(t))

	_, err = f.svc.Reserve(context.Background(), user, op("P1", "A", "80"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient available stock. Available: 70, Requested: 80", err.Error())

	it := f.get(t, "P1", "A")
	assert.True(t, it.ReservedQuantity.Equal(d("30")))
	assert.Len(t, f.outboxTypes(t), before)
}

func TestService_AjusteNegativoNoPuedeDejarStockNegativo(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "10")

	_, err := f.svc.Adjust(context.Background(), user, op("P1", "A", "-11"))
	require.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, f.get(t, "P1", "A").PhysicalQuantity.Equal(d("10")))
}

func TestService_AjusteNoPuedeBajarDeLoReservado(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "10")
	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "8"))
	require.NoError(t, err)

	_, err = f.svc.Adjust(context.Background(), user, op("P1", "A", "-5"))
	require.ErrorIs(t, err, domain.ErrReservedExceedsPhysical)
}

func TestService_AjusteRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "P1", "A", "10")

	in := op("P1", "A", "-3")
	in.Reason = "merma"
	mv, err := f.svc.Adjust(context.Background(), user, in)
	require.NoError(t, err)
	assert.Equal(t, string(entity.MovementAdjustment), mv.MovementType)
	assert.True(t, mv.Quantity.Equal(d("-3")))
	assert.Equal(t, "A", mv.LocationFromID)
	assert.Equal(t, user, mv.UserID)
	assert.Equal(t, "merma", mv.Reason)

	list, err := f.svc.ListMovements(context.Background(), it.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, string(entity.MovementEntry), list[0].MovementType)
	assert.True(t, f.get(t, "P1", "A").PhysicalQuantity.Equal(d("7")))
}

func TestService_ReservarYLiberarVuelveAlEstadoInicial(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "50")

	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "20"))
	require.NoError(t, err)
	out, err := f.svc.Release(context.Background(), user, op("P1", "A", "20"))
	require.NoError(t, err)
	assert.True(t, out.ReservedQuantity.IsZero())
	assert.True(t, out.AvailableQuantity.Equal(d("50")))

	_, err = f.svc.Release(context.Background(), user, op("P1", "A", "1"))
	assert.ErrorIs(t, err, domain.ErrInsufficientReservation)
}

func TestService_TrasladoConservaLaCantidadTotal(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "40")

	res, err := f.svc.Transfer(context.Background(), user, dto.TransferRequest{
		ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("15"), Reason: "rebalanceo",
	})
	require.NoError(t, err)
	assert.True(t, res.DestinationCreated)
	assert.True(t, res.SourcePhysical.Equal(d("25")))
	assert.True(t, res.DestinationPhysical.Equal(d("15")))
	require.Len(t, res.MovementIDs, 2)

	src, dst := f.get(t, "P1", "A"), f.get(t, "P1", "B")
	assert.True(t, src.PhysicalQuantity.Add(dst.PhysicalQuantity).Equal(d("40")))

	list, err := f.svc.ListMovements(context.Background(), dst.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(entity.MovementTransfer), list[0].MovementType)
	assert.Equal(t, "A", list[0].LocationFromID)
	assert.Equal(t, "B", list[0].LocationToID)

	assert.Contains(t, f.outboxTypes(t), "StockTransferredIntegrationEvent")
}

func TestService_TrasladoRespetaLoReservadoEnOrigen(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "10")
	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "6"))
	require.NoError(t, err)

	_, err = f.svc.Transfer(context.Background(), user, dto.TransferRequest{
		ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("5"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.get(t, "P1", "A").PhysicalQuantity.Equal(d("10")))
}

func TestService_TrasladoInvalido(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "10")
	ctx := context.Background()

	_, err := f.svc.Transfer(ctx, user, dto.TransferRequest{ProductID: "P1", FromLocationID: "A", ToLocationID: "A", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementShape)

	_, err = f.svc.Transfer(ctx, user, dto.TransferRequest{ProductID: "P1", FromLocationID: "C", ToLocationID: "B", Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	_, err = f.svc.Transfer(ctx, user, dto.TransferRequest{ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("0")})
	assert.Error(t, err)
}

func TestService_CrearItemConStockInicialRegistraEntrada(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "P1", "A", "12")
	assert.True(t, it.PhysicalQuantity.Equal(d("12")))
	assert.NotNil(t, it.LastMovementAt)

	list, err := f.svc.ListMovements(context.Background(), it.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(entity.MovementEntry), list[0].MovementType)
	assert.Equal(t, "A", list[0].LocationToID)
	assert.Contains(t, f.outboxTypes(t), "StockLevelChangedIntegrationEvent")
}

func TestService_CrearItemDuplicadoOUbicacionInexistente(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "0")
	ctx := context.Background()

	_, err := f.svc.CreateStockItem(ctx, user, dto.CreateStockItemRequest{ProductID: "P1", LocationID: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.svc.CreateStockItem(ctx, user, dto.CreateStockItemRequest{ProductID: "P1", LocationID: "Z"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.CreateStockItem(ctx, user, dto.CreateStockItemRequest{
		ProductID: "P2", LocationID: "A", MinStock: dp("10"), MaxStock: dp("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_MovimientoExplicito(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "P1", "A", "10")
	ctx := context.Background()

	mv, err := f.svc.CreateStockMovement(ctx, user, dto.CreateStockMovementRequest{
		StockItemID: it.ID, ProductID: "P1", Quantity: d("-4"), MovementType: "exit", LocationFromID: "A",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mv.ID)
	assert.True(t, f.get(t, "P1", "A").PhysicalQuantity.Equal(d("6")))

	_, err = f.svc.CreateStockMovement(ctx, user, dto.CreateStockMovementRequest{
		StockItemID: it.ID, ProductID: "P1", Quantity: d("2"), MovementType: "transfer", LocationFromID: "A", LocationToID: "B",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateStockMovement(ctx, user, dto.CreateStockMovementRequest{
		StockItemID: it.ID, ProductID: "P1", Quantity: d("3"), MovementType: "entry", LocationToID: "B",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementShape)
}

func TestService_Disponibilidad(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "10")
	f.item(t, "P1", "B", "5")
	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "4"))
	require.NoError(t, err)

	sum, err := f.svc.GetAvailability(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.True(t, sum.TotalPhysical.Equal(d("15")))
	assert.True(t, sum.TotalReserved.Equal(d("4")))
	assert.True(t, sum.TotalAvailable.Equal(d("11")))
	assert.Len(t, sum.ByLocation, 2)

	empty, err := f.svc.GetAvailability(context.Background(), "P9", "")
	require.NoError(t, err)
	assert.True(t, empty.TotalAvailable.IsZero())
	assert.Empty(t, empty.ByLocation)

	_, err = f.svc.GetAvailability(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_NecesidadesDeReposicion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	create := func(product, physical string, in dto.CreateStockItemRequest) {
		in.ProductID, in.LocationID, in.PhysicalQuantity = product, "A", d(physical)
		_, err := f.svc.CreateStockItem(ctx, user, in)
		require.NoError(t, err)
	}
	create("MED", "8", dto.CreateStockItemRequest{ReorderPoint: dp("10")})
	create("HIGH", "3", dto.CreateStockItemRequest{ReorderPoint: dp("10"), MinStock: dp("5"), MaxStock: dp("40")})
	create("CRIT", "0", dto.CreateStockItemRequest{ReorderPoint: dp("10"), ReorderQuantity: dp("25")})
	create("OK", "50", dto.CreateStockItemRequest{ReorderPoint: dp("10")})

	needs, err := f.svc.CheckReorderNeeds(ctx, "")
	require.NoError(t, err)
	require.Len(t, needs, 3)

	assert.Equal(t, "CRIT", needs[0].ProductID)
	assert.Equal(t, dto.UrgencyCritical, needs[0].Urgency)
	assert.True(t, needs[0].SuggestedQuantity.Equal(d("25")))

	assert.Equal(t, "HIGH", needs[1].ProductID)
	assert.Equal(t, dto.UrgencyHigh, needs[1].Urgency)
	assert.True(t, needs[1].SuggestedQuantity.Equal(d("37")))

	assert.Equal(t, "MED", needs[2].ProductID)
	assert.Equal(t, dto.UrgencyMedium, needs[2].Urgency)
	assert.True(t, needs[2].SuggestedQuantity.Equal(d("7")))

	other, err := f.svc.CheckReorderNeeds(ctx, "B")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_TrasladoCreaDestinoYDosMovimientosConElMismoMotivo(t *testing.T) {
	f := newFixture(t)
	f.item(t, "P1", "A", "100")
	_, err := f.svc.Reserve(context.Background(), user, op("P1", "A", "10"))
	require.NoError(t, err)

	res, err := f.svc.Transfer(context.Background(), user, dto.TransferRequest{
		ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("30"), Reason: "reubicación",
	})
	require.NoError(t, err)
	assert.True(t, res.DestinationCreated)

	src, dst := f.get(t, "P1", "A"), f.get(t, "P1", "B")
	assert.True(t, src.PhysicalQuantity.Equal(d("70")))
	assert.True(t, src.ReservedQuantity.Equal(d("10")))
	assert.True(t, dst.PhysicalQuantity.Equal(d("30")))
	assert.NotNil(t, src.LastMovementAt)
	assert.NotNil(t, dst.LastMovementAt)

	srcMoves, err := f.svc.ListMovements(context.Background(), src.ID, dto.PageRequest{})
	require.NoError(t, err)
	dstMoves, err := f.svc.ListMovements(context.Background(), dst.ID, dto.PageRequest{})
	require.NoError(t, err)
	exit, entry := srcMoves[len(srcMoves)-1], dstMoves[0]
	assert.True(t, exit.Quantity.Equal(d("-30")))
	assert.True(t, entry.Quantity.Equal(d("30")))
	assert.Equal(t, "reubicación", exit.Reason)
	assert.Equal(t, "reubicación", entry.Reason)
}

func TestService_AjusteMayorAlFisicoNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "P1", "A", "100")
	before, err := f.svc.ListMovements(context.Background(), it.ID, dto.PageRequest{})
	require.NoError(t, err)

	_, err = f.svc.Adjust(context.Background(), user, op("P1", "A", "-150"))
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	after, err := f.svc.ListMovements(context.Background(), it.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	cur := f.get(t, "P1", "A")
	assert.True(t, cur.PhysicalQuantity.Equal(d("100")))
	assert.True(t, cur.ReservedQuantity.IsZero())
}

type lockedLocations map[string]bool

func (l lockedLocations) IsLocked(_ context.Context, locationID string) (bool, error) {
	return l[locationID], nil
}

func TestService_TrasladoFallidoEnDestinoNoDejaRastro(t *testing.T) {
	locks := lockedLocations{}
	f := newFixtureWithLedger(t, stock.NewLedger(stockrules.NewRules(locks)))
	it := f.item(t, "P1", "A", "100")
	locks["B"] = true

	_, err := f.svc.Transfer(context.Background(), user, dto.TransferRequest{
		ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("30"), Reason: "reubicación",
	})
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Contains(t, err.Error(), stockrules.RuleInventoryLock)

	sum, err := f.svc.GetAvailability(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.True(t, sum.TotalPhysical.Equal(d("100")))
	require.Len(t, sum.ByLocation, 1)
	assert.Equal(t, "A", sum.ByLocation[0].LocationID)

	moves, err := f.svc.ListMovements(context.Background(), it.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, moves, 1)
	assert.NotContains(t, f.outboxTypes(t), "StockTransferredIntegrationEvent")
}

func TestService_TrasladoConOrigenBloqueadoNoDejaRastro(t *testing.T) {
	locks := lockedLocations{}
	f := newFixtureWithLedger(t, stock.NewLedger(stockrules.NewRules(locks)))
	f.item(t, "P1", "A", "100")
	f.item(t, "P1", "B", "5")
	locks["A"] = true

	_, err := f.svc.Transfer(context.Background(), user, dto.TransferRequest{
		ProductID: "P1", FromLocationID: "A", ToLocationID: "B", Quantity: d("30"),
	})
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.True(t, f.get(t, "P1", "A").PhysicalQuantity.Equal(d("100")))
	assert.True(t, f.get(t, "P1", "B").PhysicalQuantity.Equal(d("5")))
}
