package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

// seedRecord inserta un registro sin pasar por Adjust (sin alertas derivadas).
func seedRecord(t *testing.T, f *fixture, productID string, stock int, threshold, maxStock *int) {
	t.Helper()
	ok, err := f.store.Stock().CreateIfAbsent(context.Background(), &entity.StockRecord{
		ProductID:         productID,
		Stock:             stock,
		LowStockThreshold: threshold,
		MaxStock:          maxStock,
	})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckAndCreateAlerts_NoDuplica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 0, intPtr(5), nil)
	seedRecord(t, f, "p2", 50, intPtr(5), intPtr(40))

	created, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Len(t, f.notified(t), 3)

	again, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, again, "un segundo barrido no crea alertas")

	active, err := f.alerts.GetActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestCheckAndCreateAlerts_ErrorDeAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext(memory.OpStockListThresholded, domain.ErrUpstreamUnavailable)
	_, err := f.alerts.CheckAndCreateAlerts(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCreate_DuplicadoAbierto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 3, intPtr(5), nil)

	a, err := f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "p1", Type: entity.AlertTypeLowStock, Threshold: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 3, a.CurrentStock, "sin current_stock se toma el del registro")
	assert.Equal(t, "Café", a.Product.Name)

	_, err = f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "p1", Type: entity.AlertTypeLowStock})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.alerts.Resolve(ctx, a.ID, "u1")
	require.NoError(t, err)
	_, err = f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "p1", Type: entity.AlertTypeLowStock, Message: "revisar"})
	assert.NoError(t, err, "resuelta la anterior se permite abrir otra")
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "p1", Type: "CRITICAL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "nope", Type: entity.AlertTypeLowStock})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.alerts.Create(ctx, inventory.CreateAlertInput{ProductID: "p1", Type: entity.AlertTypeLowStock, CurrentStock: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.alerts.Resolve(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkResolve_CuentaSoloTransiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 0, intPtr(5), nil)
	created, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, created, 2)

	_, err = f.alerts.Resolve(ctx, created[0].ID, "u1")
	require.NoError(t, err)

	n, err := f.alerts.BulkResolve(ctx, []string{created[0].ID, created[1].ID, "nope"}, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.alerts.BulkResolve(ctx, nil, "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteYBulkDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 0, intPtr(5), nil)
	created, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, created, 2)

	require.NoError(t, f.alerts.Delete(ctx, created[0].ID))
	assert.ErrorIs(t, f.alerts.Delete(ctx, created[0].ID), domain.ErrNotFound)

	n, err := f.alerts.BulkDelete(ctx, []string{created[0].ID, created[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFindAll_FiltrosYPaginacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 0, intPtr(5), nil)
	seedRecord(t, f, "p2", 2, intPtr(5), nil)
	_, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)

	all, err := f.alerts.FindAll(ctx, inventory.AlertQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	low, err := f.alerts.FindAll(ctx, inventory.AlertQuery{Type: entity.AlertTypeLowStock})
	require.NoError(t, err)
	assert.Equal(t, 2, low.Total)

	page, err := f.alerts.FindAll(ctx, inventory.AlertQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 1)

	byProduct, err := f.alerts.FindByProduct(ctx, "p2", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, byProduct.Total)

	_, err = f.alerts.FindAll(ctx, inventory.AlertQuery{Type: "CRITICAL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetAlertSummary_CacheEInvalidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedRecord(t, f, "p1", 0, intPtr(5), nil)
	created, err := f.alerts.CheckAndCreateAlerts(ctx)
	require.NoError(t, err)

	s, err := f.alerts.GetAlertSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.ByType[entity.AlertTypeOutOfStock])
	assert.Equal(t, 1, f.store.Calls(memory.OpAlertCounts))

	_, err = f.alerts.GetAlertSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.Calls(memory.OpAlertCounts), "segunda lectura desde caché")

	_, err = f.alerts.Resolve(ctx, created[0].ID, "u1")
	require.NoError(t, err)

	s, err = f.alerts.GetAlertSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Calls(memory.OpAlertCounts), "resolver invalida la caché")
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 1, s.Resolved)
}

func TestGetAlertSummary_SinCache(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAlertUseCase(store.Alerts(), store.Stock(), store.Products(), nil, nil, nil)

	s, err := uc.GetAlertSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.ByType)

	store.FailNext(memory.OpAlertCounts, errors.New("conexión rechazada"))
	_, err = uc.GetAlertSummary(context.Background())
	assert.Error(t, err)
}
