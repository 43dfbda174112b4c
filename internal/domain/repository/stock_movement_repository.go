package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// MovementFilter filtros de consulta del historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	UserID    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementAggregate fila cruda del resumen: conteo y suma de cantidades por producto y tipo.
type MovementAggregate struct {
	ProductID   string
	ProductName string
	SKU         string
	Type        string
	Count       int
	Quantity    int
}

// StockMovementRepository define el puerto de persistencia para el historial de movimientos.
// Solo admite inserciones: no existe operación de actualización ni de borrado.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovementView, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
	Aggregate(ctx context.Context, productID string, from, to *time.Time) ([]MovementAggregate, error)
}
