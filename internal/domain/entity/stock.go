package entity

import "time"

// StockRecord representa el stock actual de un producto: existencias físicas, unidades
// reservadas y umbrales de alerta. Existe como máximo un registro por producto.
type StockRecord struct {
	ProductID         string
	Stock             int
	Reserved          int
	LowStockThreshold *int // nil = sin umbral configurado
	MaxStock          *int // nil = sin tope de sobrestock
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Available unidades disponibles para venta (stock - reservado).
func (s *StockRecord) Available() int {
	return s.Stock - s.Reserved
}

// HasThresholds indica si el registro participa en la derivación de alertas.
func (s *StockRecord) HasThresholds() bool {
	return s.LowStockThreshold != nil || s.MaxStock != nil
}

// StockRecordView registro de stock con los campos del catálogo para listados.
type StockRecordView struct {
	StockRecord
	Product ProductSummary
}
