package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeStockIn    = "STOCK_IN"   // entrada de mercancía
	MovementTypeStockOut   = "STOCK_OUT"  // salida de mercancía
	MovementTypeAdjustment = "ADJUSTMENT" // sobrescritura absoluta del stock
	MovementTypeReserve    = "RESERVE"    // reserva de unidades (stock sin cambio)
	MovementTypeRelease    = "RELEASE"    // liberación de reserva (stock sin cambio)
)

// Tipos de referencia habituales para movimientos.
const (
	ReferenceTypeOrder    = "ORDER"
	ReferenceTypePurchase = "PURCHASE"
	ReferenceTypeManual   = "MANUAL"
)

// StockMovement registro inmutable de un cambio de stock. Nunca se actualiza: las
// correcciones se registran como movimientos compensatorios.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int // ver inventory.SignedDelta para la convención de signo
	PreviousStock int
	NewStock      int
	Reason        string
	ReferenceID   string
	ReferenceType string
	UserID        string
	Notes         string
	CreatedAt     time.Time
}

// StockMovementView movimiento con los campos del catálogo para listados.
type StockMovementView struct {
	StockMovement
	Product ProductSummary
}

// IsValidMovementType informa si t es uno de los tipos conocidos.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeStockIn, MovementTypeStockOut, MovementTypeAdjustment, MovementTypeReserve, MovementTypeRelease:
		return true
	}
	return false
}
