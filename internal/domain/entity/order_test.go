package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func newOrder(status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:     "o-1",
		Number: "SO-1",
		Status: status,
		Lines:  []entity.OrderLine{{ID: "l-1", ProductID: "P", Quantity: d(3)}},
	}
}

func TestOrder_FlujoCompletoHastaFacturado(t *testing.T) {
	o := newOrder(entity.OrderDraft)

	events, err := o.Confirm(t0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.IsType(t, entity.OrderConfirmedEvent{}, events[0])

	_, err = o.StartPreparation(t0)
	require.NoError(t, err)
	_, err = o.MarkReady(t0)
	require.NoError(t, err)

	events, err = o.Ship(t0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.IsType(t, entity.OrderShippedEvent{}, events[0])

	_, err = o.Deliver(t0)
	require.NoError(t, err)
	_, err = o.MarkInvoiced(t0)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInvoiced, o.Status)
	assert.True(t, o.Status.IsTerminal())
}

func TestOrder_TransicionInvalida(t *testing.T) {
	o := newOrder(entity.OrderDraft)
	_, err := o.Ship(t0)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderDraft, o.Status)
}

func TestOrder_ConfirmarSinLineasEsInvalido(t *testing.T) {
	o := newOrder(entity.OrderDraft)
	o.Lines = nil
	_, err := o.Confirm(t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_CancelarDesdeEstadoNoTerminal(t *testing.T) {
	o := newOrder(entity.OrderReady)
	events, err := o.Cancel("cliente desistió", t0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev, ok := events[0].(entity.OrderCanceledEvent)
	require.True(t, ok)
	assert.Equal(t, "cliente desistió", ev.Reason)
	assert.Equal(t, entity.OrderCanceled, o.Status)

	_, err = o.Cancel("otra vez", t0)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrder_ReservasActivasYCierre(t *testing.T) {
	o := newOrder(entity.OrderConfirmed)

	r1, err := o.AddStockReservation("l-1", "s-1", "A", d(2), t0)
	require.NoError(t, err)
	r2, err := o.AddStockReservation("l-1", "s-2", "B", d(1), t0)
	require.NoError(t, err)
	assert.Len(t, o.ActiveReservations(), 2)

	require.NoError(t, o.ReleaseReservation(r1.ID, t0))
	require.NoError(t, o.FulfillReservation(r2.ID, t0))
	assert.Empty(t, o.ActiveReservations())

	err = o.ReleaseReservation(r1.ID, t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, o.ReleaseReservation("nope", t0), domain.ErrNotFound)
}

func TestOrder_ReservaParaLineaAjenaEsInvalida(t *testing.T) {
	o := newOrder(entity.OrderConfirmed)
	_, err := o.AddStockReservation("otra", "s-1", "A", d(1), t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_DropReservationQuitaLaReserva(t *testing.T) {
	o := newOrder(entity.OrderConfirmed)
	r, err := o.AddStockReservation("l-1", "s-1", "A", d(2), t0)
	require.NoError(t, err)
	id := r.ID
	o.DropReservation(id)
	assert.Empty(t, o.Reservations)
}
