package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// StockFilter filtros del listado de stock.
type StockFilter struct {
	LowStockOnly bool
	Limit        int
	Offset       int
}

// StockRepository define el puerto para consultar/actualizar el registro de stock por producto.
// Las escrituras se usan dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(ctx context.Context, productID string) (*entity.StockRecord, error)
	// CreateIfAbsent inserta el registro si no existe; devuelve true si lo creó.
	CreateIfAbsent(ctx context.Context, record *entity.StockRecord) (bool, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error)
	Update(ctx context.Context, record *entity.StockRecord) error
	// Delete devuelve false si no había registro.
	Delete(ctx context.Context, productID string) (bool, error)

	List(ctx context.Context, filter StockFilter) ([]*entity.StockRecordView, error)
	Count(ctx context.Context, filter StockFilter) (int, error)
	// ListWithThresholds devuelve los registros con umbral bajo o tope configurado (barrido de alertas).
	ListWithThresholds(ctx context.Context) ([]*entity.StockRecordView, error)
	// ListOrphaned devuelve registros cuyo producto está inactivo o eliminado.
	ListOrphaned(ctx context.Context) ([]*entity.StockRecordView, error)
}
