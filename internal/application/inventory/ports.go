package inventory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Stock     repository.StockRepository
	Movements repository.StockMovementRepository
	Alerts    repository.StockAlertRepository
	Products  repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// AlertNotifier publica las alertas recién creadas. Se invoca después del Commit;
// un fallo solo se registra en el log.
type AlertNotifier interface {
	AlertCreated(ctx context.Context, alert *entity.StockAlertView) error
}

// AlertSummaryCache caché del resumen de alertas (cache-aside).
type AlertSummaryCache interface {
	// Get devuelve nil sin error cuando no hay entrada.
	Get(ctx context.Context) (*repository.AlertCounts, error)
	Set(ctx context.Context, counts repository.AlertCounts) error
	Invalidate(ctx context.Context) error
}
