package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

func breached(conds []inventory.AlertCondition) map[string]bool {
	out := make(map[string]bool, len(conds))
	for _, c := range conds {
		out[c.Type] = c.Breached
	}
	return out
}

func TestEvaluateThresholds(t *testing.T) {
	cases := []struct {
		name string
		rec  entity.StockRecord
		want map[string]bool
	}{
		{"sin umbrales", entity.StockRecord{Stock: 0},
			map[string]bool{entity.AlertTypeLowStock: false, entity.AlertTypeOutOfStock: false, entity.AlertTypeOverstock: false}},
		{"por encima del umbral", entity.StockRecord{Stock: 20, LowStockThreshold: intPtr(5)},
			map[string]bool{entity.AlertTypeLowStock: false, entity.AlertTypeOutOfStock: false, entity.AlertTypeOverstock: false}},
		{"en el umbral", entity.StockRecord{Stock: 5, LowStockThreshold: intPtr(5)},
			map[string]bool{entity.AlertTypeLowStock: true, entity.AlertTypeOutOfStock: false, entity.AlertTypeOverstock: false}},
		{"agotado con umbral", entity.StockRecord{Stock: 0, LowStockThreshold: intPtr(5)},
			map[string]bool{entity.AlertTypeLowStock: true, entity.AlertTypeOutOfStock: true, entity.AlertTypeOverstock: false}},
		{"umbral cero solo agotado", entity.StockRecord{Stock: 0, LowStockThreshold: intPtr(0)},
			map[string]bool{entity.AlertTypeLowStock: false, entity.AlertTypeOutOfStock: true, entity.AlertTypeOverstock: false}},
		{"sobrestock", entity.StockRecord{Stock: 120, MaxStock: intPtr(100)},
			map[string]bool{entity.AlertTypeLowStock: false, entity.AlertTypeOutOfStock: false, entity.AlertTypeOverstock: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			assert.Equal(t, tc.want, breached(inventory.EvaluateThresholds(&rec)))
		})
	}
}

func TestAlertMessage(t *testing.T) {
	p := entity.ProductSummary{ID: "p1", Name: "Café", SKU: "SKU-1"}
	assert.Equal(t, "Producto Café (SKU-1) con stock bajo: 4 <= 5",
		inventory.AlertMessage(entity.AlertTypeLowStock, p, 4, intPtr(5)))
	assert.Equal(t, "Producto Café (SKU-1) agotado",
		inventory.AlertMessage(entity.AlertTypeOutOfStock, p, 0, nil))
	assert.Equal(t, "Producto p2 con sobrestock: 11 >= 10",
		inventory.AlertMessage(entity.AlertTypeOverstock, entity.ProductSummary{ID: "p2"}, 11, intPtr(10)))
}
