package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

func TestParseDate(t *testing.T) {
	d, err := dto.ParseDate("", false)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = dto.ParseDate("2024-03-05", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *d)

	d, err = dto.ParseDate("2024-03-05", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), *d, "la fecha final cubre el día completo")

	d, err = dto.ParseDate("2024-03-05T10:00:00-05:00", true)
	require.NoError(t, err)
	assert.Equal(t, 15, d.UTC().Hour())

	_, err = dto.ParseDate("05/03/2024", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToStockRecordResponse_ValorDelStock(t *testing.T) {
	v := &entity.StockRecordView{
		StockRecord: entity.StockRecord{ProductID: "p1", Stock: 4, Reserved: 1},
		Product:     entity.ProductSummary{ID: "p1", Name: "Café", SKU: "SKU-1", Price: decimal.RequireFromString("2500.50")},
	}
	r := dto.ToStockRecordResponse(v)
	assert.Equal(t, 3, r.Available)
	assert.True(t, decimal.RequireFromString("10002").Equal(r.StockValue))
	assert.Equal(t, "Café", r.ProductName)
}
