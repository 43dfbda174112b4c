package inventory_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, 20},
		{-3, 10, 1, 10},
		{2, 101, 2, 100},
		{5, 1, 5, 1},
		{math.MaxInt, 100, inventory.MaxPage, 100},
	}
	for _, c := range cases {
		p, s := inventory.NormalizePage(c.page, c.size)
		assert.Equal(t, c.wantPage, p)
		assert.Equal(t, c.wantSize, s)
	}
}

func TestRecordInTx_RechazaMovimientoInconsistente(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewMovementUseCase(store.Movements())
	m := &entity.StockMovement{ProductID: "p1", Type: entity.MovementTypeStockIn, Quantity: 5, PreviousStock: 0, NewStock: 6}

	err := uc.RecordInTx(context.Background(), store.Movements(), m)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)
	assert.Zero(t, store.Calls(memory.OpMovementCreate), "no se escribe nada")
}

func TestRecordInTx_AsignaIDYFecha(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewMovementUseCase(store.Movements())
	m := &entity.StockMovement{ProductID: "p1", Type: entity.MovementTypeReserve, Quantity: 2, PreviousStock: 4, NewStock: 4}

	require.NoError(t, uc.RecordInTx(context.Background(), store.Movements(), m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestMovementFindAll_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.inv.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeStockIn, Quantity: 10, UserID: "u1"})
	require.NoError(t, err)
	_, err = f.inv.RecordMovement(ctx, inventory.MovementInput{ProductID: "p2", Type: entity.MovementTypeStockIn, Quantity: 4, UserID: "u2"})
	require.NoError(t, err)
	_, err = f.inv.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeStockOut, Quantity: 3, UserID: "u2"})
	require.NoError(t, err)

	byUser, err := f.movements.FindAll(ctx, inventory.MovementQuery{UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 2, byUser.Total)

	byType, err := f.movements.FindAll(ctx, inventory.MovementQuery{Type: entity.MovementTypeStockOut})
	require.NoError(t, err)
	require.Equal(t, 1, byType.Total)
	assert.Equal(t, "Café", byType.Items[0].Product.Name)

	future := time.Now().Add(time.Hour)
	none, err := f.movements.FindAll(ctx, inventory.MovementQuery{StartDate: &future})
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.NotNil(t, none.Items)

	_, err = f.movements.FindAll(ctx, inventory.MovementQuery{Type: "IN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	past := time.Now().Add(-time.Hour)
	_, err = f.movements.FindAll(ctx, inventory.MovementQuery{StartDate: &future, EndDate: &past})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.movements.FindByProduct(ctx, "", 1, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementTypeStockIn, Quantity: 20},
		{ProductID: "p1", Type: entity.MovementTypeStockOut, Quantity: 5},
		{ProductID: "p1", Type: entity.MovementTypeReserve, Quantity: 2},
		{ProductID: "p2", Type: entity.MovementTypeStockIn, Quantity: 8},
		{ProductID: "p2", Type: entity.MovementTypeAdjustment, Quantity: 6},
	} {
		_, err := f.inv.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	s, err := f.movements.GetSummary(ctx, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.TotalMovements)
	assert.Equal(t, 28, s.StockIn)
	assert.Equal(t, 5, s.StockOut)
	assert.Equal(t, -2, s.Adjustments)
	assert.Equal(t, 2, s.Reserved)
	require.Len(t, s.ByProduct, 2)
	assert.Equal(t, "p1", s.ByProduct[0].ProductID)
	assert.Equal(t, "Café", s.ByProduct[0].ProductName)

	only, err := f.movements.GetSummary(ctx, "p2", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, only.TotalMovements)
	assert.Equal(t, 8, only.StockIn)
}
