package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura del catálogo de productos sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de lectura de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.sku, p.price, COALESCE(p.category_id, ''), COALESCE(c.name, ''),
		p.is_active, p.is_deleted, p.stock_quantity
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.CategoryID, &p.CategoryName,
		&p.IsActive, &p.IsDeleted, &p.StockQuantity)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// ListWithoutStock productos vendibles sin registro de stock.
func (r *ProductRepo) ListWithoutStock(ctx context.Context) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE p.is_active AND NOT p.is_deleted
		  AND NOT EXISTS (SELECT 1 FROM stock_records s WHERE s.product_id = p.id)
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrap("list products without stock", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, wrap("list products without stock", rows.Err())
}

// UpdateStockQuantity refleja el stock en products.stock_quantity.
func (r *ProductRepo) UpdateStockQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock_quantity = $2 WHERE id = $1`, productID, quantity)
	return wrap("update product stock", err)
}
