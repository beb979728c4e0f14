// Package memory implementa los repositorios y el TxRunner en memoria.
// Una sola transacción a la vez (semáforo con timeout); cada transacción trabaja
// sobre una copia del estado que se publica solo en commit.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store estado completo del ledger en memoria.
type Store struct {
	sem         chan struct{}
	lockTimeout time.Duration
	data        *state
}

type state struct {
	locations   map[string]entity.Location
	items       map[string]entity.StockItem
	keys        map[entity.StockKey]string
	movements   []entity.StockMovement
	orders      map[string]entity.Order
	outbox      []entity.OutboxEvent
	deadLetters []entity.OutboxDeadLetter
}

// NewStore crea un store vacío. lockTimeout <= 0 espera indefinidamente (hasta ctx).
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		sem:         make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		data: &state{
			locations: map[string]entity.Location{},
			items:     map[string]entity.StockItem{},
			keys:      map[entity.StockKey]string{},
			orders:    map[string]entity.Order{},
		},
	}
}

// Run ejecuta fn con repos sobre una copia del estado; la copia reemplaza al estado solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer func() { <-s.sem }()

	work := s.data.clone()
	if err := fn(work.tx()); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		t := time.NewTimer(s.lockTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-timeout:
		return fmt.Errorf("memory store: %w", domain.ErrLockTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (st *state) tx() repository.Tx {
	return repository.Tx{
		StockItems: &stockItemRepo{st: st},
		Movements:  &movementRepo{st: st},
		Locations:  &locationRepo{st: st},
		Orders:     &orderRepo{st: st},
		Outbox:     &outboxRepo{st: st},
	}
}

func (st *state) clone() *state {
	c := &state{
		locations:   make(map[string]entity.Location, len(st.locations)),
		items:       make(map[string]entity.StockItem, len(st.items)),
		keys:        make(map[entity.StockKey]string, len(st.keys)),
		movements:   append([]entity.StockMovement(nil), st.movements...),
		orders:      make(map[string]entity.Order, len(st.orders)),
		outbox:      append([]entity.OutboxEvent(nil), st.outbox...),
		deadLetters: append([]entity.OutboxDeadLetter(nil), st.deadLetters...),
	}
	for k, v := range st.locations {
		c.locations[k] = v
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	for k, v := range st.keys {
		c.keys[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = copyOrder(v)
	}
	return c
}

func copyOrder(o entity.Order) entity.Order {
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	o.Reservations = append([]entity.StockReservation(nil), o.Reservations...)
	return o
}
