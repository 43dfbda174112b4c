package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-stock/internal/domain"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrConflict},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"único", &pgconn.PgError{Code: "23505", ConstraintName: "uq_stock_alerts_open"}, domain.ErrDuplicate},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "stock_records_reserved_check"}, domain.ErrInvalidAdjustment},
		{"conexión", &pgconn.PgError{Code: "08006"}, domain.ErrUpstreamUnavailable},
		{"envuelto", fmt.Errorf("update: %w", &pgconn.PgError{Code: "55P03"}), domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyError(tt.err), tt.want)
		})
	}
}

func TestClassifyError_SinCambios(t *testing.T) {
	assert.Nil(t, classifyError(nil))
	assert.ErrorIs(t, classifyError(context.DeadlineExceeded), context.DeadlineExceeded)

	plain := errors.New("otro")
	assert.Equal(t, plain, classifyError(plain))
	other := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(other), classifyError(other))
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.add("product_id = $%d", "p1")
	w.addRaw("NOT is_resolved")
	w.add("created_at >= $%d", "2024-01-01")
	assert.Equal(t, " WHERE product_id = $1 AND NOT is_resolved AND created_at >= $2", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(20, 40))
	assert.Len(t, w.args, 4)

	var empty whereBuilder
	assert.Equal(t, "", empty.sql())
	assert.Equal(t, "", empty.page(0, 0))
}
