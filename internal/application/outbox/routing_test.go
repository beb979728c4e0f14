package outbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/application/outbox"
)

func TestRoutingKey(t *testing.T) {
	cases := map[string]string{
		"OrderStockReservedIntegrationEvent":       "order.stock.reserved",
		"StockLevelChangedIntegrationEvent":        "stock.level.changed",
		"StockReorderPointReachedIntegrationEvent": "stock.reorder.point.reached",
		"SKUAdjusted":                              "sku.adjusted",
		"Stock":                                    "stock",
		"IntegrationEvent":                         "integrationevent",
	}
	for in, want := range cases {
		assert.Equal(t, want, outbox.RoutingKey(in), in)
	}
}
