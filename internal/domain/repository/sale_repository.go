package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas.
type SaleFilter struct {
	Search    string // consecutivo, nombre o email del cliente
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	SoldByID  string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetItems devuelve las líneas de la venta con resumen del producto.
	GetItems(saleID string) ([]entity.SaleItem, error)
	UpdateStatus(id, status string) error
	// UpdateStatusFrom cambia el estado solo si el estado actual es `from`
	// y reporta si la fila cambió. Es la pieza que serializa transiciones
	// condicionales (reembolsos) frente a peticiones concurrentes: dos
	// reembolsos del mismo saleID no pueden ganar ambos.
	UpdateStatusFrom(id, from, to string) (bool, error)
	List(filter SaleFilter) ([]*entity.Sale, int, error)

	// StatsSince devuelve ingresos y número de ventas COMPLETED creadas a
	// partir del instante dado (ventana móvil de las estadísticas).
	StatsSince(since time.Time) (revenue decimal.Decimal, count int, err error)

	// NextSaleNumber reserva y devuelve el siguiente consecutivo del día
	// mediante un incremento atómico sobre la fila del contador
	// (sale_counters). Debe invocarse dentro de la transacción de la venta:
	// el bloqueo de la fila serializa la asignación frente a creaciones
	// concurrentes del mismo día.
	NextSaleNumber(day time.Time) (string, error)
}
