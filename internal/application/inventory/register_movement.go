package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

// MovementInput movimiento enviado por otro servicio (pedidos, compras).
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      int
	Reason        string
	ReferenceID   string
	ReferenceType string
	UserID        string
	Notes         string
}

// RecordMovement traduce el movimiento a un ajuste y lo aplica con Adjust, de modo que nunca
// exista un movimiento sin el cambio de stock correspondiente:
//
//	STOCK_IN    stock    +q
//	STOCK_OUT   stock    -q
//	RESERVE     reserved +q
//	RELEASE     reserved -q
//	ADJUSTMENT  stock     = q
//
// Un movimiento que no cambia ningún contador (ADJUSTMENT igual al stock actual) se rechaza.
func (uc *InventoryUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockRecordView, error) {
	q := in.Quantity
	var adj inventory.Adjustment
	switch in.Type {
	case entity.MovementTypeStockIn:
		adj = inventory.Relative{StockDelta: q}
	case entity.MovementTypeStockOut:
		adj = inventory.Relative{StockDelta: -q}
	case entity.MovementTypeReserve:
		adj = inventory.Relative{ReservedDelta: q}
	case entity.MovementTypeRelease:
		adj = inventory.Relative{ReservedDelta: -q}
	case entity.MovementTypeAdjustment:
		adj = inventory.Absolute{Stock: &q}
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Type == entity.MovementTypeAdjustment {
		if q < 0 {
			return nil, fmt.Errorf("%w: el stock absoluto no puede ser negativo", domain.ErrInvalidAdjustment)
		}
	} else if q <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de %s debe ser positiva", domain.ErrInvalidInput, in.Type)
	}

	return uc.Adjust(ctx, in.ProductID, AdjustInput{
		Adjustment:    adj,
		Reason:        in.Reason,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		UserID:        in.UserID,
		Notes:         in.Notes,
		RequireChange: true,
	})
}
