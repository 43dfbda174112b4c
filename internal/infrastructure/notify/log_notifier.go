package notify

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

var _ inventory.AlertNotifier = (*LogNotifier)(nil)

// LogNotifier registra las alertas en el log estructurado. Se usa cuando no hay AMQP_URL.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) AlertCreated(_ context.Context, alert *entity.StockAlertView) error {
	ev := n.log.Info().
		Str("alert_id", alert.ID).
		Str("product_id", alert.ProductID).
		Str("sku", alert.Product.SKU).
		Str("type", alert.Type).
		Int("current_stock", alert.CurrentStock)
	if alert.Threshold != nil {
		ev = ev.Int("threshold", *alert.Threshold)
	}
	ev.Msg(alert.Message)
	return nil
}
