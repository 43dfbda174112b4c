package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// AdjustInventoryRequest body para PATCH /api/inventory/:productId.
// Deltas (stockDelta/reservedDelta) y valores absolutos (stock/reserved) son excluyentes.
type AdjustInventoryRequest struct {
	StockDelta        *int   `json:"stockDelta,omitempty"`
	ReservedDelta     *int   `json:"reservedDelta,omitempty"`
	Stock             *int   `json:"stock,omitempty"`
	Reserved          *int   `json:"reserved,omitempty"`
	LowStockThreshold *int   `json:"lowStockThreshold,omitempty"`
	MaxStock          *int   `json:"maxStock,omitempty"`
	Reason            string `json:"reason,omitempty"`
	ReferenceID       string `json:"referenceId,omitempty"`
	ReferenceType     string `json:"referenceType,omitempty"`
	Notes             string `json:"notes,omitempty"`
	SyncToProduct     bool   `json:"syncToProduct,omitempty"`
}

// StockRecordResponse salida de un registro de stock con datos del catálogo.
type StockRecordResponse struct {
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	SKU               string          `json:"sku"`
	CategoryID        string          `json:"categoryId,omitempty"`
	CategoryName      string          `json:"categoryName,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	Reserved          int             `json:"reserved"`
	Available         int             `json:"available"`
	LowStockThreshold *int            `json:"lowStockThreshold"`
	MaxStock          *int            `json:"maxStock"`
	StockValue        decimal.Decimal `json:"stockValue"` // price * stock
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// StockListResponse lista paginada del stock.
type StockListResponse struct {
	PageResponse
	Items []StockRecordResponse `json:"items"`
}

// DeleteStockResponse resumen del registro eliminado.
type DeleteStockResponse struct {
	ProductID     string `json:"productId"`
	Stock         int    `json:"stock"`
	Reserved      int    `json:"reserved"`
	AlertsDeleted int    `json:"alertsDeleted"`
}

// SyncResponse resultado de POST /api/inventory/sync.
type SyncResponse struct {
	SyncedProducts int                   `json:"syncedProducts"`
	OrphanedCount  int                   `json:"orphanedCount"`
	Created        []StockRecordResponse `json:"created"`
	Orphaned       []StockRecordResponse `json:"orphaned"`
}

// ToStockRecordResponse convierte la vista del registro a su salida HTTP.
func ToStockRecordResponse(v *entity.StockRecordView) StockRecordResponse {
	return StockRecordResponse{
		ProductID:         v.ProductID,
		ProductName:       v.Product.Name,
		SKU:               v.Product.SKU,
		CategoryID:        v.Product.CategoryID,
		CategoryName:      v.Product.CategoryName,
		Price:             v.Product.Price,
		Stock:             v.Stock,
		Reserved:          v.Reserved,
		Available:         v.Available(),
		LowStockThreshold: v.LowStockThreshold,
		MaxStock:          v.MaxStock,
		StockValue:        v.Product.Price.Mul(decimal.NewFromInt(int64(v.Stock))),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// ToStockRecordResponses convierte una lista; nunca devuelve nil.
func ToStockRecordResponses(views []*entity.StockRecordView) []StockRecordResponse {
	out := make([]StockRecordResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToStockRecordResponse(v))
	}
	return out
}
