package usecase

import (
	"context"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// StockUseCase lecturas del libro de inventario para auditoría.
type StockUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListByProduct historial de movimientos de un producto, paginado.
func (uc *StockUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{Movements: toMovementResponses(movements)}, nil
}

// ListByReference movimientos correlacionados con una referencia externa
// (consecutivo de venta, INITIAL, ADJUSTMENT).
func (uc *StockUseCase) ListByReference(ctx context.Context, reference string) (*dto.StockMovementListResponse, error) {
	movements, err := uc.movRepo.ListByReference(reference)
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{Movements: toMovementResponses(movements)}, nil
}

func toMovementResponses(movements []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
