package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Razones y referencias usadas por el sistema al registrar movimientos.
const (
	MovementReasonSale       = "Sale"
	MovementReasonRefund     = "Refund"
	MovementReasonAdjustment = "Manual adjustment"
	MovementReasonInitial    = "Initial stock"

	MovementRefInitial    = "INITIAL"
	MovementRefAdjustment = "ADJUSTMENT"
)

// StockMovement es un registro del libro de inventario: bitácora append-only
// de cambios de stock por producto. Nunca se actualiza ni se borra; el stock
// actual vive en Product.Quantity, el libro existe para auditoría y reportes.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // IN | OUT
	Quantity  int    // > 0
	Reason    string // "Sale", "Refund", "Manual adjustment", "Initial stock"
	Reference string // consecutivo de venta u otra marca externa
	CreatedAt time.Time
}
