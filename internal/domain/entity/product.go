package entity

import "github.com/shopspring/decimal"

// Product vista de solo lectura del catálogo externo. El motor de inventario no crea ni
// edita productos; solo puede reflejar el stock en StockQuantity.
type Product struct {
	ID            string
	Name          string
	SKU           string
	Price         decimal.Decimal
	CategoryID    string
	CategoryName  string
	IsActive      bool
	IsDeleted     bool
	StockQuantity int
}

// Sellable indica si el producto admite movimientos de inventario.
func (p *Product) Sellable() bool {
	return p.IsActive && !p.IsDeleted
}

// Summary devuelve los campos mínimos de presentación.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

// ProductSummary campos de catálogo unidos a stock, movimientos y alertas.
type ProductSummary struct {
	ID           string
	Name         string
	SKU          string
	Price        decimal.Decimal
	CategoryID   string
	CategoryName string
}
