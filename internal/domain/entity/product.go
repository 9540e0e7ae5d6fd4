package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Quantity nunca es negativo; SKU y Barcode (si existe) son únicos a nivel global.
// El stock actual vive aquí; el historial vive en stock_movements.
type Product struct {
	ID          string
	Name        string
	Description string
	SKU         string          // único
	Barcode     *string         // único si está presente
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de adquisición
	Quantity    int             // stock actual (>= 0)
	MinStock    int             // umbral de alerta de stock bajo
	MaxStock    int
	CategoryID  string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o por debajo del umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
