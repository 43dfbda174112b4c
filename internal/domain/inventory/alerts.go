package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// AlertCondition resultado de evaluar un tipo de alerta sobre un registro de stock.
type AlertCondition struct {
	Type      string
	Threshold *int
	Breached  bool
}

// EvaluateThresholds evalúa las tres reglas de alerta sobre el registro:
//
//	LOW_STOCK     umbral > 0 y stock <= umbral
//	OUT_OF_STOCK  umbral configurado y stock == 0
//	OVERSTOCK     tope configurado y stock >= tope
//
// Siempre devuelve los tres tipos para que el llamador pueda resolver las alertas
// abiertas cuya condición ya no se cumple.
func EvaluateThresholds(rec *entity.StockRecord) []AlertCondition {
	low := AlertCondition{Type: entity.AlertTypeLowStock, Threshold: rec.LowStockThreshold}
	if t := rec.LowStockThreshold; t != nil && *t > 0 && rec.Stock <= *t {
		low.Breached = true
	}
	out := AlertCondition{Type: entity.AlertTypeOutOfStock}
	if rec.LowStockThreshold != nil && rec.Stock == 0 {
		out.Breached = true
	}
	over := AlertCondition{Type: entity.AlertTypeOverstock, Threshold: rec.MaxStock}
	if m := rec.MaxStock; m != nil && rec.Stock >= *m {
		over.Breached = true
	}
	return []AlertCondition{low, out, over}
}

// AlertMessage texto legible de la alerta.
func AlertMessage(alertType string, p entity.ProductSummary, stock int, threshold *int) string {
	name := productLabel(p)
	switch alertType {
	case entity.AlertTypeLowStock:
		return fmt.Sprintf("Producto %s con stock bajo: %d <= %d", name, stock, deref(threshold))
	case entity.AlertTypeOutOfStock:
		return fmt.Sprintf("Producto %s agotado", name)
	case entity.AlertTypeOverstock:
		return fmt.Sprintf("Producto %s con sobrestock: %d >= %d", name, stock, deref(threshold))
	}
	return fmt.Sprintf("Producto %s: alerta %s (stock %d)", name, alertType, stock)
}

func productLabel(p entity.ProductSummary) string {
	switch {
	case p.Name != "" && p.SKU != "":
		return fmt.Sprintf("%s (%s)", p.Name, p.SKU)
	case p.Name != "":
		return p.Name
	}
	return p.ID
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
