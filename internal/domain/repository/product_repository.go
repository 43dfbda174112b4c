package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo externo.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListWithoutStock productos activos y no eliminados que aún no tienen registro de stock.
	ListWithoutStock(ctx context.Context) ([]*entity.Product, error)
	// UpdateStockQuantity refleja el stock en la ficha del producto (opción SyncToProduct).
	UpdateStockQuantity(ctx context.Context, productID string, quantity int) error
}
