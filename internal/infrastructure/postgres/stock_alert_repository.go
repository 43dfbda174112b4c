package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo alertas de inventario sobre PostgreSQL (usable con pool o tx).
// La unicidad de alertas abiertas la garantiza el índice parcial uq_stock_alerts_open.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `a.id, a.product_id, a.type, a.message, a.threshold, a.current_stock,
	a.is_resolved, a.resolved_at, COALESCE(a.resolved_by, ''), a.created_at, a.updated_at`

const alertInsert = `
	INSERT INTO stock_alerts (id, product_id, type, message, threshold, current_stock, is_resolved, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)`

func alertArgs(a *entity.StockAlert) []any {
	return []any{a.ID, a.ProductID, a.Type, a.Message, a.Threshold, a.CurrentStock, a.CreatedAt, a.UpdatedAt}
}

// Create inserta la alerta; una alerta abierta del mismo tipo devuelve domain.ErrDuplicate.
func (r *StockAlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	if _, err := r.q.Exec(ctx, alertInsert, alertArgs(a)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una alerta %s abierta para el producto %s", domain.ErrDuplicate, a.Type, a.ProductID)
		}
		return wrap("create alert", err)
	}
	return nil
}

// CreateIfAbsent inserta solo si no hay alerta abierta del mismo (producto, tipo).
func (r *StockAlertRepo) CreateIfAbsent(ctx context.Context, a *entity.StockAlert) (bool, error) {
	query := alertInsert + `
	ON CONFLICT (product_id, type) WHERE NOT is_resolved DO NOTHING`
	tag, err := r.q.Exec(ctx, query, alertArgs(a)...)
	if err != nil {
		return false, wrap("create alert if absent", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanAlert(row pgx.Row, a *entity.StockAlert, extra ...any) error {
	dest := []any{&a.ID, &a.ProductID, &a.Type, &a.Message, &a.Threshold, &a.CurrentStock,
		&a.IsResolved, &a.ResolvedAt, &a.ResolvedBy, &a.CreatedAt, &a.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

const alertViewSelect = `
	SELECT ` + alertColumns + `, COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(p.price, 0)
	FROM stock_alerts a
	LEFT JOIN products p ON p.id = a.product_id`

// GetByID obtiene una alerta por ID. nil si no existe.
func (r *StockAlertRepo) GetByID(ctx context.Context, id string) (*entity.StockAlertView, error) {
	var v entity.StockAlertView
	err := scanAlert(r.q.QueryRow(ctx, alertViewSelect+` WHERE a.id = $1`, id), &v.StockAlert,
		&v.Product.Name, &v.Product.SKU, &v.Product.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get alert", err)
	}
	v.Product.ID = v.ProductID
	return &v, nil
}

func alertWhere(f repository.AlertFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ProductID != "" {
		w.add("a.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("a.type = $%d", f.Type)
	}
	if f.IsResolved != nil {
		w.add("a.is_resolved = $%d", *f.IsResolved)
	}
	if f.From != nil {
		w.add("a.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("a.created_at <= $%d", *f.To)
	}
	return w
}

// List alertas filtradas, de la más reciente a la más antigua.
func (r *StockAlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.StockAlertView, error) {
	w := alertWhere(f)
	query := alertViewSelect + w.sql() + ` ORDER BY a.created_at DESC, a.id DESC`
	query += w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, wrap("list alerts", err)
	}
	defer rows.Close()
	list := make([]*entity.StockAlertView, 0)
	for rows.Next() {
		var v entity.StockAlertView
		if err := scanAlert(rows, &v.StockAlert, &v.Product.Name, &v.Product.SKU, &v.Product.Price); err != nil {
			return nil, wrap("scan alert", err)
		}
		v.Product.ID = v.ProductID
		list = append(list, &v)
	}
	return list, wrap("list alerts", rows.Err())
}

// Count cuenta las alertas que cumplen el filtro.
func (r *StockAlertRepo) Count(ctx context.Context, f repository.AlertFilter) (int, error) {
	w := alertWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_alerts a`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, wrap("count alerts", err)
	}
	return n, nil
}

// ListOpenByProduct alertas abiertas de un producto.
func (r *StockAlertRepo) ListOpenByProduct(ctx context.Context, productID string) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts a
		WHERE a.product_id = $1 AND NOT a.is_resolved
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, wrap("list open alerts", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := scanAlert(rows, &a); err != nil {
			return nil, wrap("scan alert", err)
		}
		list = append(list, &a)
	}
	return list, wrap("list open alerts", rows.Err())
}

// Resolve marca la alerta como resuelta; conserva resolved_at y resolved_by si ya lo estaba.
func (r *StockAlertRepo) Resolve(ctx context.Context, id, userID string, at time.Time) (*entity.StockAlert, error) {
	query := `
		UPDATE stock_alerts a
		SET resolved_by = CASE WHEN a.is_resolved THEN a.resolved_by ELSE $2 END,
			updated_at  = CASE WHEN a.is_resolved THEN a.updated_at ELSE $3 END,
			resolved_at = COALESCE(a.resolved_at, $3),
			is_resolved = TRUE
		WHERE a.id = $1
		RETURNING ` + alertColumns
	var a entity.StockAlert
	if err := scanAlert(r.q.QueryRow(ctx, query, id, nullIfEmpty(userID), at), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("resolve alert", err)
	}
	return &a, nil
}

// ResolveMany resuelve las alertas abiertas de ids; devuelve cuántas cambiaron de estado.
func (r *StockAlertRepo) ResolveMany(ctx context.Context, ids []string, userID string, at time.Time) (int, error) {
	query := `
		UPDATE stock_alerts
		SET is_resolved = TRUE, resolved_at = COALESCE(resolved_at, $2), resolved_by = $3, updated_at = $2
		WHERE id = ANY($1) AND NOT is_resolved`
	tag, err := r.q.Exec(ctx, query, ids, at, nullIfEmpty(userID))
	if err != nil {
		return 0, wrap("resolve alerts", err)
	}
	return int(tag.RowsAffected()), nil
}

// Delete elimina una alerta; false si no existía.
func (r *StockAlertRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_alerts WHERE id = $1`, id)
	if err != nil {
		return false, wrap("delete alert", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteMany elimina las alertas de ids; devuelve cuántas existían.
func (r *StockAlertRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_alerts WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, wrap("delete alerts", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByProduct elimina todas las alertas de un producto.
func (r *StockAlertRepo) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_alerts WHERE product_id = $1`, productID)
	if err != nil {
		return 0, wrap("delete product alerts", err)
	}
	return int(tag.RowsAffected()), nil
}

// Counts totales de alertas; ByType cuenta solo las activas.
func (r *StockAlertRepo) Counts(ctx context.Context) (repository.AlertCounts, error) {
	c := repository.AlertCounts{ByType: map[string]int{}}
	query := `
		SELECT type, is_resolved, COUNT(*)::int
		FROM stock_alerts
		GROUP BY type, is_resolved`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return c, wrap("count alerts by type", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			alertType string
			resolved  bool
			n         int
		)
		if err := rows.Scan(&alertType, &resolved, &n); err != nil {
			return c, wrap("scan alert counts", err)
		}
		c.Total += n
		if resolved {
			c.Resolved += n
			continue
		}
		c.Active += n
		c.ByType[alertType] += n
	}
	return c, wrap("count alerts by type", rows.Err())
}
