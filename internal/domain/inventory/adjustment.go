package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// Adjustment variante etiquetada de un ajuste de stock: Relative o Absolute.
// Un ajuste nunca mezcla ambos estilos.
type Adjustment interface {
	// Apply calcula los contadores resultantes a partir de los actuales.
	Apply(stock, reserved int) (newStock, newReserved int)
	// Absolute indica si el ajuste sobrescribe valores en lugar de sumarlos.
	Absolute() bool
}

// Relative suma deltas (positivos o negativos) a los contadores actuales.
type Relative struct {
	StockDelta    int
	ReservedDelta int
}

func (r Relative) Apply(stock, reserved int) (int, int) {
	return stock + r.StockDelta, reserved + r.ReservedDelta
}

func (Relative) Absolute() bool { return false }

// Absolute sobrescribe los contadores indicados; nil conserva el valor actual.
type Absolute struct {
	Stock    *int
	Reserved *int
}

func (a Absolute) Apply(stock, reserved int) (int, int) {
	if a.Stock != nil {
		stock = *a.Stock
	}
	if a.Reserved != nil {
		reserved = *a.Reserved
	}
	return stock, reserved
}

func (Absolute) Absolute() bool { return true }

// NewAdjustment es la única puerta de validación entre la forma "opcional" del request y la
// variante etiquetada. Devuelve nil (sin error) cuando no se pidió ningún cambio de contadores.
func NewAdjustment(stockDelta, reservedDelta, stock, reserved *int) (Adjustment, error) {
	relative := stockDelta != nil || reservedDelta != nil
	absolute := stock != nil || reserved != nil
	switch {
	case relative && absolute:
		return nil, fmt.Errorf("%w: no se pueden combinar deltas y valores absolutos", domain.ErrInvalidAdjustment)
	case relative:
		adj := Relative{}
		if stockDelta != nil {
			adj.StockDelta = *stockDelta
		}
		if reservedDelta != nil {
			adj.ReservedDelta = *reservedDelta
		}
		return adj, nil
	case absolute:
		return Absolute{Stock: stock, Reserved: reserved}, nil
	}
	return nil, nil
}

// CheckInvariants valida 0 <= reserved <= stock y nombra el invariante violado.
func CheckInvariants(stock, reserved int) error {
	if stock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo (%d)", domain.ErrInvalidAdjustment, stock)
	}
	if reserved < 0 {
		return fmt.Errorf("%w: la reserva no puede ser negativa (%d)", domain.ErrInvalidAdjustment, reserved)
	}
	if reserved > stock {
		return fmt.Errorf("%w: la reserva (%d) supera el stock (%d)", domain.ErrInvalidAdjustment, reserved, stock)
	}
	return nil
}

// CheckThresholds valida los umbrales configurables del registro.
func CheckThresholds(lowStockThreshold, maxStock *int) error {
	if lowStockThreshold != nil && *lowStockThreshold < 0 {
		return fmt.Errorf("%w: el umbral de stock bajo no puede ser negativo", domain.ErrInvalidAdjustment)
	}
	if maxStock != nil && *maxStock <= 0 {
		return fmt.Errorf("%w: el stock máximo debe ser mayor que cero", domain.ErrInvalidAdjustment)
	}
	return nil
}

// MovementDraft movimiento calculado pendiente de metadatos (motivo, referencia, usuario).
type MovementDraft struct {
	Type          string
	Quantity      int
	PreviousStock int
	NewStock      int
}

// PlanMovements deriva los movimientos a registrar para un ajuste ya aplicado.
// El cambio de stock va primero; el de reserva se registra con stock constante.
func PlanMovements(adj Adjustment, prevStock, prevReserved, newStock, newReserved int) []MovementDraft {
	var drafts []MovementDraft
	if diff := newStock - prevStock; diff != 0 {
		d := MovementDraft{PreviousStock: prevStock, NewStock: newStock}
		switch {
		case adj.Absolute():
			d.Type = entity.MovementTypeAdjustment
			d.Quantity = diff
		case diff > 0:
			d.Type = entity.MovementTypeStockIn
			d.Quantity = diff
		default:
			d.Type = entity.MovementTypeStockOut
			d.Quantity = -diff
		}
		drafts = append(drafts, d)
	}
	if diff := newReserved - prevReserved; diff != 0 {
		d := MovementDraft{Type: entity.MovementTypeReserve, Quantity: diff, PreviousStock: newStock, NewStock: newStock}
		if diff < 0 {
			d.Type = entity.MovementTypeRelease
			d.Quantity = -diff
		}
		drafts = append(drafts, d)
	}
	return drafts
}
