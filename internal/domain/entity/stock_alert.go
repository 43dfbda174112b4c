package entity

import "time"

// Tipos de alerta de inventario.
const (
	AlertTypeLowStock   = "LOW_STOCK"
	AlertTypeOutOfStock = "OUT_OF_STOCK"
	AlertTypeOverstock  = "OVERSTOCK"
)

// StockAlert alerta derivada de un cruce de umbral. Solo muta al resolverse:
// OPEN (IsResolved=false) -> RESOLVED, estado terminal.
type StockAlert struct {
	ID           string
	ProductID    string
	Type         string
	Message      string
	Threshold    *int // umbral que disparó la alerta
	CurrentStock int  // stock en el momento del disparo
	IsResolved   bool
	ResolvedAt   *time.Time
	ResolvedBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockAlertView alerta con los campos del catálogo para listados.
type StockAlertView struct {
	StockAlert
	Product ProductSummary
}

// IsValidAlertType informa si t es uno de los tipos conocidos.
func IsValidAlertType(t string) bool {
	switch t {
	case AlertTypeLowStock, AlertTypeOutOfStock, AlertTypeOverstock:
		return true
	}
	return false
}
