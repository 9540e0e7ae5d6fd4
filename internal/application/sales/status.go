package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// UpdateStatus cambia el estado de una venta.
//
// La transición COMPLETED → REFUNDED revierte el inventario de forma atómica:
// por cada línea se restaura la cantidad del producto y se registra un
// movimiento IN con razón "Refund" y referencia al consecutivo de la venta.
//
// El resto de transiciones son una actualización simple del campo de estado.
// En particular, CANCELLED no ajusta stock: decisión heredada del producto
// (pendiente de confirmación con negocio), no un olvido.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, saleID, status string) error {
	if !entity.ValidSaleStatus(status) {
		return domain.ErrInvalidStatus
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrSaleNotFound
	}

	if status == entity.SaleStatusRefunded && sale.Status == entity.SaleStatusCompleted {
		return uc.refund(ctx, sale)
	}
	return uc.saleRepo.UpdateStatus(saleID, status)
}

// refund ejecuta la reversión de inventario y el cambio de estado en una sola
// transacción: la suma de los movimientos IN generados es exactamente igual a
// la suma de los OUT originales de la venta.
//
// El cambio de estado es condicional (COMPLETED → REFUNDED) y ocurre dentro
// de la transacción: la fila de la venta queda bloqueada hasta el commit, así
// que de dos reembolsos concurrentes solo uno gana y revierte el stock. El
// perdedor ve la venta ya reembolsada y no hace nada, igual que una petición
// de reembolso sobre una venta que ya está en REFUNDED.
func (uc *SaleUseCase) refund(ctx context.Context, sale *entity.Sale) error {
	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return err
	}
	now := uc.now()

	return uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		flipped, err := saleRepo.UpdateStatusFrom(sale.ID, entity.SaleStatusCompleted, entity.SaleStatusRefunded)
		if err != nil {
			return err
		}
		if !flipped {
			// Otro reembolso ya revirtió esta venta.
			return nil
		}
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity+item.Quantity); err != nil {
				return err
			}
			movement := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Type:      entity.MovementTypeIN,
				Quantity:  item.Quantity,
				Reason:    entity.MovementReasonRefund,
				Reference: sale.SaleNumber,
				CreatedAt: now,
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
}
