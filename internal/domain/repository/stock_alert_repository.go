package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// AlertFilter filtros de consulta de alertas.
type AlertFilter struct {
	ProductID  string
	Type       string
	IsResolved *bool
	From       *time.Time
	To         *time.Time
	Limit      int // 0 = sin límite
	Offset     int
}

// AlertCounts conteos agregados de alertas. ByType cuenta solo las activas.
type AlertCounts struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Resolved int            `json:"resolved"`
	ByType   map[string]int `json:"byType"`
}

// StockAlertRepository define el puerto de persistencia para alertas de inventario.
type StockAlertRepository interface {
	// Create inserta sin comprobar duplicados; devuelve domain.ErrDuplicate si ya hay
	// una alerta abierta del mismo tipo para el producto.
	Create(ctx context.Context, alert *entity.StockAlert) error
	// CreateIfAbsent inserta solo si no existe una alerta abierta del mismo (producto, tipo).
	CreateIfAbsent(ctx context.Context, alert *entity.StockAlert) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.StockAlertView, error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.StockAlertView, error)
	Count(ctx context.Context, filter AlertFilter) (int, error)
	ListOpenByProduct(ctx context.Context, productID string) ([]*entity.StockAlert, error)
	// Resolve marca la alerta como resuelta conservando el primer ResolvedAt. nil si no existe.
	Resolve(ctx context.Context, id, userID string, at time.Time) (*entity.StockAlert, error)
	ResolveMany(ctx context.Context, ids []string, userID string, at time.Time) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteByProduct(ctx context.Context, productID string) (int, error)
	Counts(ctx context.Context) (AlertCounts, error)
}
