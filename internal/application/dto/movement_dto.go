package dto

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
)

// RecordMovementRequest body para POST /api/inventory/movements (uso interno entre servicios).
type RecordMovementRequest struct {
	ProductID     string `json:"productId"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	Reason        string `json:"reason,omitempty"`
	ReferenceID   string `json:"referenceId,omitempty"`
	ReferenceType string `json:"referenceType,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	SKU           string    `json:"sku"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	Reason        string    `json:"reason,omitempty"`
	ReferenceID   string    `json:"referenceId,omitempty"`
	ReferenceType string    `json:"referenceType,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	PageResponse
	Items []MovementResponse `json:"items"`
}

// MovementTotalsResponse sumas de cantidades por tipo.
type MovementTotalsResponse struct {
	TotalMovements int `json:"totalMovements"`
	StockIn        int `json:"stockIn"`
	StockOut       int `json:"stockOut"`
	Adjustments    int `json:"adjustments"`
	Reserved       int `json:"reserved"`
	Released       int `json:"released"`
}

// ProductMovementSummaryResponse totales de un producto.
type ProductMovementSummaryResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	MovementTotalsResponse
}

// MovementSummaryResponse salida de GET /api/inventory/movements/summary.
type MovementSummaryResponse struct {
	MovementTotalsResponse
	ByProduct []ProductMovementSummaryResponse `json:"byProduct"`
}

// ToMovementResponse convierte la vista del movimiento a su salida HTTP.
func ToMovementResponse(v *entity.StockMovementView) MovementResponse {
	return MovementResponse{
		ID:            v.ID,
		ProductID:     v.ProductID,
		ProductName:   v.Product.Name,
		SKU:           v.Product.SKU,
		Type:          v.Type,
		Quantity:      v.Quantity,
		PreviousStock: v.PreviousStock,
		NewStock:      v.NewStock,
		Reason:        v.Reason,
		ReferenceID:   v.ReferenceID,
		ReferenceType: v.ReferenceType,
		UserID:        v.UserID,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
	}
}

// ToMovementResponses convierte una lista; nunca devuelve nil.
func ToMovementResponses(views []*entity.StockMovementView) []MovementResponse {
	out := make([]MovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToMovementResponse(v))
	}
	return out
}

func toTotals(t inventory.MovementTotals) MovementTotalsResponse {
	return MovementTotalsResponse{
		TotalMovements: t.TotalMovements,
		StockIn:        t.StockIn,
		StockOut:       t.StockOut,
		Adjustments:    t.Adjustments,
		Reserved:       t.Reserved,
		Released:       t.Released,
	}
}

// ToMovementSummaryResponse convierte el resumen de dominio.
func ToMovementSummaryResponse(s inventory.MovementSummary) MovementSummaryResponse {
	out := MovementSummaryResponse{
		MovementTotalsResponse: toTotals(s.MovementTotals),
		ByProduct:              make([]ProductMovementSummaryResponse, 0, len(s.ByProduct)),
	}
	for _, p := range s.ByProduct {
		out.ByProduct = append(out.ByProduct, ProductMovementSummaryResponse{
			ProductID:              p.ProductID,
			ProductName:            p.ProductName,
			SKU:                    p.SKU,
			MovementTotalsResponse: toTotals(p.MovementTotals),
		})
	}
	return out
}
