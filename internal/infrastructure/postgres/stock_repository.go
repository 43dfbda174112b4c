package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `s.product_id, s.stock, s.reserved, s.low_stock_threshold, s.max_stock, s.created_at, s.updated_at`

const stockViewSelect = `
	SELECT ` + stockColumns + `,
		COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(p.price, 0),
		COALESCE(p.category_id, ''), COALESCE(c.name, '')
	FROM stock_records s
	LEFT JOIN products p ON p.id = s.product_id
	LEFT JOIN categories c ON c.id = p.category_id`

// Get obtiene el registro de stock de un producto. nil si no existe.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockRecord, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM stock_records s WHERE s.product_id = $1`, productID, "get stock")
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM stock_records s WHERE s.product_id = $1 FOR UPDATE`, productID, "get stock for update")
}

func (r *StockRepo) getOne(ctx context.Context, query, productID, op string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.ProductID, &s.Stock, &s.Reserved, &s.LowStockThreshold, &s.MaxStock, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return &s, nil
}

// CreateIfAbsent inserta el registro con ON CONFLICT DO NOTHING; true si lo creó.
func (r *StockRepo) CreateIfAbsent(ctx context.Context, record *entity.StockRecord) (bool, error) {
	query := `
		INSERT INTO stock_records (product_id, stock, reserved, low_stock_threshold, max_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		record.ProductID, record.Stock, record.Reserved, record.LowStockThreshold, record.MaxStock,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return false, wrap("create stock record", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update persiste contadores y umbrales.
func (r *StockRepo) Update(ctx context.Context, record *entity.StockRecord) error {
	query := `
		UPDATE stock_records
		SET stock = $2, reserved = $3, low_stock_threshold = $4, max_stock = $5, updated_at = $6
		WHERE product_id = $1`
	_, err := r.q.Exec(ctx, query,
		record.ProductID, record.Stock, record.Reserved, record.LowStockThreshold, record.MaxStock, record.UpdatedAt,
	)
	return wrap("update stock record", err)
}

// Delete elimina el registro; false si no existía.
func (r *StockRepo) Delete(ctx context.Context, productID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_records WHERE product_id = $1`, productID)
	if err != nil {
		return false, wrap("delete stock record", err)
	}
	return tag.RowsAffected() > 0, nil
}

func stockWhere(filter repository.StockFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.LowStockOnly {
		w.addRaw("s.low_stock_threshold > 0 AND s.stock <= s.low_stock_threshold")
	}
	return w
}

// List lista registros con datos del catálogo, del más recientemente actualizado al más antiguo.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockRecordView, error) {
	w := stockWhere(filter)
	query := stockViewSelect + w.sql() + ` ORDER BY s.updated_at DESC, s.product_id`
	query += w.page(filter.Limit, filter.Offset)
	return r.listViews(ctx, "list stock", query, w.args...)
}

// Count cuenta los registros que cumplen el filtro.
func (r *StockRepo) Count(ctx context.Context, filter repository.StockFilter) (int, error) {
	w := stockWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_records s`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, wrap("count stock", err)
	}
	return n, nil
}

// ListWithThresholds registros con umbral bajo o tope configurado.
func (r *StockRepo) ListWithThresholds(ctx context.Context) ([]*entity.StockRecordView, error) {
	query := stockViewSelect + `
		WHERE s.low_stock_threshold IS NOT NULL OR s.max_stock IS NOT NULL
		ORDER BY s.updated_at DESC, s.product_id`
	return r.listViews(ctx, "list thresholded stock", query)
}

// ListOrphaned registros cuyo producto no existe, está inactivo o eliminado.
func (r *StockRepo) ListOrphaned(ctx context.Context) ([]*entity.StockRecordView, error) {
	query := stockViewSelect + `
		WHERE p.id IS NULL OR NOT p.is_active OR p.is_deleted
		ORDER BY s.updated_at DESC, s.product_id`
	return r.listViews(ctx, "list orphaned stock", query)
}

func (r *StockRepo) listViews(ctx context.Context, op, query string, args ...any) ([]*entity.StockRecordView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	list := make([]*entity.StockRecordView, 0)
	for rows.Next() {
		var v entity.StockRecordView
		if err := rows.Scan(
			&v.ProductID, &v.Stock, &v.Reserved, &v.LowStockThreshold, &v.MaxStock, &v.CreatedAt, &v.UpdatedAt,
			&v.Product.Name, &v.Product.SKU, &v.Product.Price, &v.Product.CategoryID, &v.Product.CategoryName,
		); err != nil {
			return nil, wrap("scan stock", err)
		}
		v.Product.ID = v.ProductID
		list = append(list, &v)
	}
	return list, wrap(op, rows.Err())
}
