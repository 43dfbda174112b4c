package inventory

import (
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// MovementTotals sumas de cantidades por tipo de movimiento.
type MovementTotals struct {
	TotalMovements int
	StockIn        int
	StockOut       int
	Adjustments    int // suma con signo de los ajustes absolutos
	Reserved       int
	Released       int
}

// ProductMovementSummary totales de un producto.
type ProductMovementSummary struct {
	ProductID   string
	ProductName string
	SKU         string
	MovementTotals
}

// MovementSummary resumen agregado del historial.
type MovementSummary struct {
	MovementTotals
	ByProduct []ProductMovementSummary
}

func (t *MovementTotals) add(movementType string, count, quantity int) {
	t.TotalMovements += count
	switch movementType {
	case entity.MovementTypeStockIn:
		t.StockIn += quantity
	case entity.MovementTypeStockOut:
		t.StockOut += quantity
	case entity.MovementTypeAdjustment:
		t.Adjustments += quantity
	case entity.MovementTypeReserve:
		t.Reserved += quantity
	case entity.MovementTypeRelease:
		t.Released += quantity
	}
}

// Summarize pliega las filas (producto, tipo) en el resumen global y por producto.
// ByProduct queda ordenado por número de movimientos descendente.
func Summarize(rows []repository.MovementAggregate) MovementSummary {
	var out MovementSummary
	index := make(map[string]int)
	for _, r := range rows {
		out.add(r.Type, r.Count, r.Quantity)
		i, ok := index[r.ProductID]
		if !ok {
			out.ByProduct = append(out.ByProduct, ProductMovementSummary{
				ProductID: r.ProductID, ProductName: r.ProductName, SKU: r.SKU,
			})
			i = len(out.ByProduct) - 1
			index[r.ProductID] = i
		}
		out.ByProduct[i].add(r.Type, r.Count, r.Quantity)
	}
	sort.SliceStable(out.ByProduct, func(i, j int) bool {
		a, b := out.ByProduct[i], out.ByProduct[j]
		if a.TotalMovements != b.TotalMovements {
			return a.TotalMovements > b.TotalMovements
		}
		return a.ProductID < b.ProductID
	})
	if out.ByProduct == nil {
		out.ByProduct = []ProductMovementSummary{}
	}
	return out
}
