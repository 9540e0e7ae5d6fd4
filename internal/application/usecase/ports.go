package usecase

import (
	"context"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// CatalogTxRunner ejecuta una función dentro de una transacción de BD con los
// repos del catálogo atados a esa tx. Las ediciones de producto que tocan el
// stock escriben el producto y el movimiento del libro como unidad atómica.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
