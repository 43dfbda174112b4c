package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// SignedDelta efecto de un movimiento sobre el stock físico.
//
//	STOCK_IN   +quantity
//	STOCK_OUT  -quantity
//	ADJUSTMENT  quantity (con signo)
//	RESERVE/RELEASE 0
func SignedDelta(movementType string, quantity int) int {
	switch movementType {
	case entity.MovementTypeStockIn:
		return quantity
	case entity.MovementTypeStockOut:
		return -quantity
	case entity.MovementTypeAdjustment:
		return quantity
	}
	return 0
}

// ValidateMovement comprueba tipo, signo de la cantidad y newStock = previousStock + delta.
func ValidateMovement(m *entity.StockMovement) error {
	if m.ProductID == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if !entity.IsValidMovementType(m.Type) {
		return fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, m.Type)
	}
	if m.Type != entity.MovementTypeAdjustment && m.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad de %s debe ser positiva", domain.ErrInvalidInput, m.Type)
	}
	if m.PreviousStock < 0 || m.NewStock < 0 {
		return fmt.Errorf("%w: el movimiento no puede dejar stock negativo", domain.ErrInvalidAdjustment)
	}
	if m.NewStock != m.PreviousStock+SignedDelta(m.Type, m.Quantity) {
		return fmt.Errorf("%w: movimiento inconsistente %d -> %d con %s %d",
			domain.ErrInvalidAdjustment, m.PreviousStock, m.NewStock, m.Type, m.Quantity)
	}
	return nil
}

// Replay reproduce la cadena de movimientos (del más antiguo al más reciente) desde stock 0
// y devuelve el stock final. Falla si algún eslabón no parte del stock acumulado.
func Replay(movements []*entity.StockMovement) (int, error) {
	stock := 0
	for _, m := range movements {
		if m.PreviousStock != stock {
			return stock, fmt.Errorf("movimiento %s parte de %d, se esperaba %d", m.ID, m.PreviousStock, stock)
		}
		stock += SignedDelta(m.Type, m.Quantity)
		if stock != m.NewStock {
			return stock, fmt.Errorf("movimiento %s termina en %d, se esperaba %d", m.ID, m.NewStock, stock)
		}
	}
	return stock, nil
}
