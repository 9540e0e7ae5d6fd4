package repository

import "github.com/phoenixdev100/Sales-Suite/internal/domain/entity"

// StockMovementRepository define el puerto del libro de inventario.
// Append-only: solo Create y lecturas; no existen Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference lista los movimientos correlacionados con una referencia
	// externa (por ejemplo, un consecutivo de venta).
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
