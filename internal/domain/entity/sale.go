package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
	SaleStatusRefunded  = "REFUNDED"
)

// ValidSaleStatus indica si el estado pertenece al conjunto permitido.
func ValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusRefunded:
		return true
	}
	return false
}

// SaleNumberPrefix prefijo del consecutivo legible de ventas.
const SaleNumberPrefix = "SALE"

// FormatSaleNumber arma el consecutivo legible SALE-YYYYMMDD-NNNN
// (secuencia de 4 dígitos con ceros a la izquierda, por día calendario).
func FormatSaleNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", SaleNumberPrefix, day.Format("20060102"), seq)
}

// Sale representa una venta con su consecutivo legible y totales.
// FinalAmount = TotalAmount - Discount + Tax. Inmutable una vez COMPLETED,
// salvo las transiciones de estado.
type Sale struct {
	ID            string
	SaleNumber    string // único, formato SALE-YYYYMMDD-NNNN
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	FinalAmount   decimal.Decimal
	PaymentMethod string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	Status        string
	SoldByID      string
	Items         []SaleItem
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Resumen del vendedor para respuestas (se llena en lecturas con join).
	SoldByFirstName string
	SoldByLastName  string
}

// SaleItem es una línea de venta. Price es el precio unitario al momento de la
// venta (snapshot, independiente de cambios posteriores en el producto).
// Se crea una vez y nunca se modifica.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int // > 0
	Price     decimal.Decimal
	Total     decimal.Decimal // Quantity × Price
	CreatedAt time.Time

	// Resumen del producto para respuestas (se llena en lecturas con join).
	ProductName string
	ProductSKU  string
}
