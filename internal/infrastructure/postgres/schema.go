package postgres

import (
	"context"
	"fmt"
)

// schema DDL idempotente del ledger. Los ids de producto y variante son referencias externas (TEXT);
// variant_id '' significa producto sin variantes, así la clave única no depende de NULLs.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id          TEXT PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL CHECK (type IN ('warehouse','zone','aisle','shelf','level','virtual')),
		parent_id   TEXT REFERENCES locations(id),
		site_id     TEXT NOT NULL DEFAULT '',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_items (
		id                TEXT PRIMARY KEY,
		product_id        TEXT NOT NULL,
		variant_id        TEXT NOT NULL DEFAULT '',
		location_id       TEXT NOT NULL REFERENCES locations(id),
		physical_quantity NUMERIC(18,4) NOT NULL DEFAULT 0 CHECK (physical_quantity >= 0),
		reserved_quantity NUMERIC(18,4) NOT NULL DEFAULT 0 CHECK (reserved_quantity >= 0),
		min_stock         NUMERIC(18,4),
		max_stock         NUMERIC(18,4),
		reorder_point     NUMERIC(18,4),
		reorder_quantity  NUMERIC(18,4),
		valuation_method  TEXT NOT NULL DEFAULT 'standard' CHECK (valuation_method IN ('standard','fifo','avco')),
		last_movement_at  TIMESTAMPTZ,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT stock_items_key UNIQUE (product_id, variant_id, location_id),
		CONSTRAINT stock_items_reserved_le_physical CHECK (reserved_quantity <= physical_quantity)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id                    TEXT PRIMARY KEY,
		stock_item_id         TEXT NOT NULL REFERENCES stock_items(id),
		product_id            TEXT NOT NULL,
		variant_id            TEXT NOT NULL DEFAULT '',
		quantity              NUMERIC(18,4) NOT NULL CHECK (quantity <> 0),
		movement_type         TEXT NOT NULL CHECK (movement_type IN ('entry','exit','transfer','adjustment')),
		location_from_id      TEXT REFERENCES locations(id),
		location_to_id        TEXT REFERENCES locations(id),
		user_id               TEXT NOT NULL DEFAULT '',
		reason                TEXT NOT NULL DEFAULT '',
		related_document_type TEXT NOT NULL DEFAULT '',
		related_document_id   TEXT NOT NULL DEFAULT '',
		correlation_id        TEXT NOT NULL DEFAULT '',
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS stock_movements_item_idx ON stock_movements (stock_item_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                    TEXT PRIMARY KEY,
		number                TEXT NOT NULL,
		tenant_id             TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL,
		preferred_location_id TEXT REFERENCES locations(id),
		cancel_reason         TEXT NOT NULL DEFAULT '',
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id         TEXT PRIMARY KEY,
		order_id   TEXT NOT NULL REFERENCES orders(id),
		position   INT NOT NULL,
		product_id TEXT NOT NULL,
		variant_id TEXT NOT NULL DEFAULT '',
		quantity   NUMERIC(18,4) NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_reservations (
		id            TEXT PRIMARY KEY,
		order_id      TEXT NOT NULL REFERENCES orders(id),
		order_line_id TEXT NOT NULL REFERENCES order_lines(id),
		stock_item_id TEXT NOT NULL REFERENCES stock_items(id),
		location_id   TEXT NOT NULL REFERENCES locations(id),
		quantity      NUMERIC(18,4) NOT NULL CHECK (quantity > 0),
		status        TEXT NOT NULL CHECK (status IN ('reserved','fulfilled','released')),
		reserved_at   TIMESTAMPTZ NOT NULL,
		released_at   TIMESTAMPTZ,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS stock_reservations_order_idx ON stock_reservations (order_id)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id            TEXT PRIMARY KEY,
		event_type    TEXT NOT NULL,
		event_data    JSONB NOT NULL,
		occurred_on   TIMESTAMPTZ NOT NULL,
		tenant_id     TEXT NOT NULL DEFAULT '',
		is_processed  BOOLEAN NOT NULL DEFAULT FALSE,
		processed_on  TIMESTAMPTZ,
		retry_count   INT NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS outbox_events_pending_idx ON outbox_events (occurred_on) WHERE NOT is_processed`,
	`CREATE TABLE IF NOT EXISTS outbox_dead_letters (
		id              TEXT PRIMARY KEY,
		outbox_event_id TEXT NOT NULL REFERENCES outbox_events(id),
		event_type      TEXT NOT NULL,
		event_data      JSONB NOT NULL,
		occurred_on     TIMESTAMPTZ NOT NULL,
		tenant_id       TEXT NOT NULL DEFAULT '',
		retry_count     INT NOT NULL,
		last_error      TEXT NOT NULL DEFAULT '',
		failed_at       TIMESTAMPTZ NOT NULL,
		replayed_at     TIMESTAMPTZ
	)`,
}

// Migrate crea las tablas del ledger si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
