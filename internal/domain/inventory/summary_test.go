package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

func TestSummarize(t *testing.T) {
	rows := []repository.MovementAggregate{
		{ProductID: "p1", ProductName: "Café", Type: entity.MovementTypeStockIn, Count: 2, Quantity: 30},
		{ProductID: "p1", ProductName: "Café", Type: entity.MovementTypeStockOut, Count: 1, Quantity: 16},
		{ProductID: "p2", ProductName: "Té", Type: entity.MovementTypeAdjustment, Count: 1, Quantity: -3},
		{ProductID: "p2", ProductName: "Té", Type: entity.MovementTypeReserve, Count: 1, Quantity: 2},
		{ProductID: "p2", ProductName: "Té", Type: entity.MovementTypeRelease, Count: 1, Quantity: 1},
	}

	s := inventory.Summarize(rows)

	assert.Equal(t, 6, s.TotalMovements)
	assert.Equal(t, 30, s.StockIn)
	assert.Equal(t, 16, s.StockOut)
	assert.Equal(t, -3, s.Adjustments)
	assert.Equal(t, 2, s.Reserved)
	assert.Equal(t, 1, s.Released)

	require.Len(t, s.ByProduct, 2)
	assert.Equal(t, "p1", s.ByProduct[0].ProductID, "empate a 3 movimientos se ordena por id")
	assert.Equal(t, 30, s.ByProduct[0].StockIn)
	assert.Equal(t, "p2", s.ByProduct[1].ProductID)
	assert.Equal(t, 3, s.ByProduct[1].TotalMovements)
}

func TestSummarize_SinFilas(t *testing.T) {
	s := inventory.Summarize(nil)
	assert.Zero(t, s.TotalMovements)
	assert.NotNil(t, s.ByProduct)
	assert.Empty(t, s.ByProduct)
}
