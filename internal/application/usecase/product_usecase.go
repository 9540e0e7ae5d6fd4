package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de productos. Todo cambio de
// stock (inicial o manual) queda registrado en el libro de inventario dentro
// de la misma transacción que la escritura del producto.
type ProductUseCase struct {
	txRunner     CatalogTxRunner
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner CatalogTxRunner, repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. La unicidad de SKU y código de barras la garantiza
// la base de datos (constraint única); los pre-chequeos solo producen un error
// más amigable en el caso común. Si el stock inicial es mayor que cero se
// registra un movimiento IN "Initial stock".
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetBySKU(in.SKU); existing != nil {
		return nil, domain.ErrDuplicateSKU
	}
	if in.Barcode != nil && *in.Barcode != "" {
		if existing, _ := uc.repo.GetByBarcode(*in.Barcode); existing != nil {
			return nil, domain.ErrDuplicateBarcode
		}
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	now := time.Now()
	maxStock := in.MaxStock
	if maxStock <= 0 {
		maxStock = 1000
	}
	barcode := in.Barcode
	if barcode != nil && *barcode == "" {
		barcode = nil
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
		Barcode:     barcode,
		Price:       in.Price,
		Cost:        in.Cost,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		MaxStock:    maxStock,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if product.Quantity > 0 {
			return movRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Type:      entity.MovementTypeIN,
				Quantity:  product.Quantity,
				Reason:    entity.MovementReasonInitial,
				Reference: entity.MovementRefInitial,
				CreatedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	resp.Category = &dto.CategorySummary{ID: category.ID, Name: category.Name}
	return resp, nil
}

// Update actualiza un producto. Si cambia Quantity, el delta queda en el libro
// como movimiento "Manual adjustment": IN si el delta es positivo, OUT si es
// negativo, con la magnitud absoluta. Producto y movimiento se escriben en la
// misma transacción, con la fila bloqueada.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.SKU != nil && *in.SKU != existing.SKU {
		if dup, _ := uc.repo.GetBySKU(*in.SKU); dup != nil {
			return nil, domain.ErrDuplicateSKU
		}
	}
	if in.Barcode != nil && *in.Barcode != "" && (existing.Barcode == nil || *in.Barcode != *existing.Barcode) {
		if dup, _ := uc.repo.GetByBarcode(*in.Barcode); dup != nil {
			return nil, domain.ErrDuplicateBarcode
		}
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrCategoryNotFound
		}
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var updated *entity.Product
	err = uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		quantityDiff := 0
		if in.Quantity != nil {
			quantityDiff = *in.Quantity - product.Quantity
		}

		applyProductUpdate(product, in)
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		if quantityDiff != 0 {
			movType := entity.MovementTypeIN
			qty := quantityDiff
			if quantityDiff < 0 {
				movType = entity.MovementTypeOUT
				qty = -quantityDiff
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Type:      movType,
				Quantity:  qty,
				Reason:    entity.MovementReasonAdjustment,
				Reference: entity.MovementRefAdjustment,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// GetByID obtiene un producto con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := toProductResponse(product)
	if category, err := uc.categoryRepo.GetByID(product.CategoryID); err == nil && category != nil {
		resp.Category = &dto.CategorySummary{ID: category.ID, Name: category.Name}
	}
	return resp, nil
}

// List lista productos con búsqueda, filtros, orden y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.Category,
		LowStock:   in.LowStock,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	products := make([]dto.ProductResponse, 0, len(list))
	lowStock := 0
	for _, p := range list {
		if p.LowStock() {
			lowStock++
		}
		products = append(products, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:      products,
		Pagination:    dto.NewPageResponse(in.Page, in.Limit, total),
		LowStockCount: lowStock,
	}, nil
}

// ListLowStock productos activos en o por debajo del umbral mínimo, los más
// bajos primero.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto sin historial de ventas. Con historial se
// rechaza: el registro respalda ventas pasadas y debe desactivarse en su lugar.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	hasSales, err := uc.repo.HasSaleItems(id)
	if err != nil {
		return err
	}
	if hasSales {
		return domain.ErrHasSalesHistory
	}
	return uc.repo.Delete(id)
}

func applyProductUpdate(product *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Barcode != nil {
		if *in.Barcode == "" {
			product.Barcode = nil
		} else {
			product.Barcode = in.Barcode
		}
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Price:       p.Price,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
