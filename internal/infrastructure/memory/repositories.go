package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = (*stockItemRepo)(nil)
	_ repository.StockMovementRepository = (*movementRepo)(nil)
	_ repository.LocationRepository      = (*locationRepo)(nil)
	_ repository.OrderRepository         = (*orderRepo)(nil)
	_ repository.OutboxRepository        = (*outboxRepo)(nil)
)

// Los repos devuelven copias: los cambios solo llegan al estado vía Create/Update/Save.

type stockItemRepo struct{ st *state }

func (r *stockItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	it, ok := r.st.items[id]
	if !ok {
		return nil, domain.NotFound("stock item", id)
	}
	return &it, nil
}

func (r *stockItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *stockItemRepo) GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockItem, error) {
	id, ok := r.st.keys[key]
	if !ok {
		return nil, domain.NotFound("stock item", key.ProductID+"@"+key.LocationID)
	}
	return r.GetByID(ctx, id)
}

func (r *stockItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	if _, ok := r.st.keys[item.Key()]; ok {
		return domain.ErrDuplicate
	}
	r.st.items[item.ID] = *item
	r.st.keys[item.Key()] = item.ID
	return nil
}

func (r *stockItemRepo) Update(_ context.Context, item *entity.StockItem) error {
	if _, ok := r.st.items[item.ID]; !ok {
		return domain.NotFound("stock item", item.ID)
	}
	r.st.items[item.ID] = *item
	return nil
}

func (r *stockItemRepo) ListByProduct(_ context.Context, productID, variantID string) ([]*entity.StockItem, error) {
	out := r.filter(func(it *entity.StockItem) bool {
		return it.ProductID == productID && it.VariantID == variantID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

func (r *stockItemRepo) ListAvailableForUpdate(_ context.Context, productID, variantID, excludeLocationID string) ([]*entity.StockItem, error) {
	out := r.filter(func(it *entity.StockItem) bool {
		return it.ProductID == productID && it.VariantID == variantID &&
			it.LocationID != excludeLocationID && it.Available().IsPositive()
	})
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Available(), out[j].Available()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

func (r *stockItemRepo) ListBelowReorderPoint(_ context.Context, locationID string) ([]*entity.StockItem, error) {
	out := r.filter(func(it *entity.StockItem) bool {
		return (locationID == "" || it.LocationID == locationID) && it.NeedsReorder()
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })
	return out, nil
}

func (r *stockItemRepo) filter(keep func(*entity.StockItem) bool) []*entity.StockItem {
	var out []*entity.StockItem
	for _, it := range r.st.items {
		it := it
		if keep(&it) {
			out = append(out, &it)
		}
	}
	return out
}

type movementRepo struct{ st *state }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r *movementRepo) ListByStockItem(_ context.Context, stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.st.movements {
		if r.st.movements[i].StockItemID == stockItemID {
			m := r.st.movements[i]
			out = append(out, &m)
		}
	}
	return page(out, limit, offset), nil
}

type locationRepo struct{ st *state }

func (r *locationRepo) Create(_ context.Context, l *entity.Location) error {
	if _, ok := r.st.locations[l.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st.locations[id]
	if !ok {
		return nil, domain.NotFound("location", id)
	}
	return &l, nil
}

type orderRepo struct{ st *state }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	if _, ok := r.st.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.st.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *orderRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, domain.NotFound("order", id)
	}
	c := copyOrder(o)
	return &c, nil
}

func (r *orderRepo) Save(_ context.Context, o *entity.Order) error {
	if _, ok := r.st.orders[o.ID]; !ok {
		return domain.NotFound("order", o.ID)
	}
	r.st.orders[o.ID] = copyOrder(*o)
	return nil
}

type outboxRepo struct{ st *state }

func (r *outboxRepo) Append(_ context.Context, e *entity.OutboxEvent) error {
	r.st.outbox = append(r.st.outbox, *e)
	return nil
}

func (r *outboxRepo) FetchPending(_ context.Context, limit int) ([]*entity.OutboxEvent, error) {
	var out []*entity.OutboxEvent
	for i := range r.st.outbox {
		if !r.st.outbox[i].IsProcessed {
			e := r.st.outbox[i]
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredOn.Before(out[j].OccurredOn) })
	return page(out, limit, 0), nil
}

func (r *outboxRepo) MarkProcessed(_ context.Context, id string, at time.Time) error {
	e, err := r.find(id)
	if err != nil {
		return err
	}
	t := at
	e.IsProcessed = true
	e.ProcessedOn = &t
	return nil
}

func (r *outboxRepo) MarkFailed(_ context.Context, ev *entity.OutboxEvent) error {
	e, err := r.find(ev.ID)
	if err != nil {
		return err
	}
	e.RetryCount = ev.RetryCount
	e.ErrorMessage = ev.ErrorMessage
	e.IsProcessed = ev.IsProcessed
	e.ProcessedOn = ev.ProcessedOn
	return nil
}

func (r *outboxRepo) find(id string) (*entity.OutboxEvent, error) {
	for i := range r.st.outbox {
		if r.st.outbox[i].ID == id {
			return &r.st.outbox[i], nil
		}
	}
	return nil, domain.NotFound("outbox event", id)
}

func (r *outboxRepo) InsertDeadLetter(_ context.Context, dl *entity.OutboxDeadLetter) error {
	r.st.deadLetters = append(r.st.deadLetters, *dl)
	return nil
}

func (r *outboxRepo) ListDeadLetters(_ context.Context, limit, offset int) ([]*entity.OutboxDeadLetter, error) {
	out := make([]*entity.OutboxDeadLetter, 0, len(r.st.deadLetters))
	for i := len(r.st.deadLetters) - 1; i >= 0; i-- {
		dl := r.st.deadLetters[i]
		out = append(out, &dl)
	}
	return page(out, limit, offset), nil
}

func (r *outboxRepo) GetDeadLetterForUpdate(_ context.Context, id string) (*entity.OutboxDeadLetter, error) {
	for i := range r.st.deadLetters {
		if r.st.deadLetters[i].ID == id {
			dl := r.st.deadLetters[i]
			return &dl, nil
		}
	}
	return nil, domain.NotFound("dead letter", id)
}

func (r *outboxRepo) MarkReplayed(_ context.Context, id string, at time.Time) error {
	for i := range r.st.deadLetters {
		if r.st.deadLetters[i].ID == id {
			t := at
			r.st.deadLetters[i].ReplayedAt = &t
			return nil
		}
	}
	return domain.NotFound("dead letter", id)
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
