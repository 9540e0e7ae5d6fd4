package sales

import (
	"context"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ventas:
// o se confirman la venta, sus líneas, los descuentos de stock y los
// movimientos del libro, o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
