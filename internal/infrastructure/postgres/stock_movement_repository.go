package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta: no hay UPDATE ni DELETE sobre stock_movements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, previous_stock, new_stock,
			reason, reference_id, reference_type, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		nullIfEmpty(m.Reason), nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceType),
		nullIfEmpty(m.UserID), nullIfEmpty(m.Notes), m.CreatedAt,
	)
	return wrap("create stock movement", err)
}

func movementWhere(f repository.MovementFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ProductID != "" {
		w.add("m.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("m.type = $%d", f.Type)
	}
	if f.UserID != "" {
		w.add("m.user_id = $%d", f.UserID)
	}
	if f.From != nil {
		w.add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("m.created_at <= $%d", *f.To)
	}
	return w
}

// List movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovementView, error) {
	w := movementWhere(f)
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.previous_stock, m.new_stock,
			COALESCE(m.reason, ''), COALESCE(m.reference_id, ''), COALESCE(m.reference_type, ''),
			COALESCE(m.user_id, ''), COALESCE(m.notes, ''), m.created_at,
			COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(p.price, 0)
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id` + w.sql() + `
		ORDER BY m.created_at DESC, m.seq DESC`
	query += w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, wrap("list movements", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovementView, 0)
	for rows.Next() {
		var v entity.StockMovementView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Type, &v.Quantity, &v.PreviousStock, &v.NewStock,
			&v.Reason, &v.ReferenceID, &v.ReferenceType, &v.UserID, &v.Notes, &v.CreatedAt,
			&v.Product.Name, &v.Product.SKU, &v.Product.Price); err != nil {
			return nil, wrap("scan movement", err)
		}
		v.Product.ID = v.ProductID
		list = append(list, &v)
	}
	return list, wrap("list movements", rows.Err())
}

// Count cuenta los movimientos que cumplen el filtro.
func (r *StockMovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	w := movementWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, wrap("count movements", err)
	}
	return n, nil
}

// Aggregate conteo y suma de cantidades por (producto, tipo).
func (r *StockMovementRepo) Aggregate(ctx context.Context, productID string, from, to *time.Time) ([]repository.MovementAggregate, error) {
	w := movementWhere(repository.MovementFilter{ProductID: productID, From: from, To: to})
	query := `
		SELECT m.product_id, COALESCE(p.name, ''), COALESCE(p.sku, ''), m.type,
			COUNT(*)::int, COALESCE(SUM(m.quantity), 0)::int
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id` + w.sql() + `
		GROUP BY m.product_id, p.name, p.sku, m.type
		ORDER BY m.product_id, m.type`

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, wrap("aggregate movements", err)
	}
	defer rows.Close()
	var out []repository.MovementAggregate
	for rows.Next() {
		var a repository.MovementAggregate
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.SKU, &a.Type, &a.Count, &a.Quantity); err != nil {
			return nil, wrap("scan aggregate", err)
		}
		out = append(out, a)
	}
	return out, wrap("aggregate movements", rows.Err())
}
