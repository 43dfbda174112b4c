package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

type captureGenerator struct {
	report *inventory.InventoryReport
	err    error
}

func (g *captureGenerator) GenerateInventoryReport(_ context.Context, r *inventory.InventoryReport) ([]byte, error) {
	g.report = r
	return []byte("%PDF-fake"), g.err
}

func TestReportUseCase_Generate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inv.Adjust(ctx, "p1", inventory.AdjustInput{Adjustment: delta(3).Adjustment, LowStockThreshold: intPtr(5)})
	require.NoError(t, err)
	_, err = f.inv.Adjust(ctx, "p2", delta(10))
	require.NoError(t, err)

	gen := &captureGenerator{}
	uc := inventory.NewReportUseCase(f.alerts, f.movements, gen)

	pdf, filename, err := uc.Generate(ctx, "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Regexp(t, `^inventario-\d{8}-\d{4}\.pdf$`, filename)

	require.NotNil(t, gen.report)
	require.Len(t, gen.report.ActiveAlerts, 1)
	assert.Equal(t, entity.AlertTypeLowStock, gen.report.ActiveAlerts[0].Type)
	assert.Equal(t, 2, gen.report.Summary.TotalMovements)
	assert.Equal(t, 13, gen.report.Summary.StockIn)

	_, _, err = uc.Generate(ctx, "p2", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gen.report.ActiveAlerts)
	assert.Equal(t, 1, gen.report.Summary.TotalMovements)
}

func TestReportUseCase_RangoInvalido(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewReportUseCase(f.alerts, f.movements, &captureGenerator{})
	from := time.Now()
	to := from.Add(-time.Hour)

	_, _, err := uc.Generate(context.Background(), "", &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportUseCase_ErrorDelGenerador(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewReportUseCase(f.alerts, f.movements, &captureGenerator{err: errors.New("sin fuente")})

	_, _, err := uc.Generate(context.Background(), "", nil, nil)
	assert.Error(t, err)
}
