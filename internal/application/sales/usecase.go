package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// SaleUseCase motor de ventas: crea ventas de forma transaccional con bloqueo
// de fila (SELECT FOR UPDATE) sobre el stock, asigna el consecutivo diario y
// registra los movimientos del libro de inventario. También maneja las
// transiciones de estado (incluida la reversión por reembolso) y las
// estadísticas del período.
type SaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewSaleUseCase construye el caso de uso. Los repos inyectados se usan para
// lecturas fuera de transacción; las escrituras pasan por txRunner.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// validatedItem línea de canasta ya validada contra el catálogo.
type validatedItem struct {
	productID string
	quantity  int
	price     decimal.Decimal
	total     decimal.Decimal
}

// Create valida la canasta contra el catálogo, calcula totales y persiste la
// venta completa como una sola unidad atómica: venta + líneas + descuento de
// stock + movimientos OUT del libro, todo dentro de una transacción.
//
// Las violaciones de reglas de negocio (producto inexistente, inactivo o sin
// stock) se detectan antes de cualquier escritura y cortan la operación sin
// dejar estado parcial. La disponibilidad se verifica de nuevo dentro de la
// transacción, ya con la fila bloqueada, para cerrar la ventana entre chequeo
// y descuento ante ventas concurrentes del mismo producto.
func (uc *SaleUseCase) Create(ctx context.Context, actorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validación previa (solo lectura): existencia, estado activo y stock.
	// La demanda se acumula por producto: una canasta puede repetir el mismo
	// producto en varias líneas y el stock debe alcanzar para la suma, no
	// para cada línea por separado.
	totalAmount := decimal.Zero
	items := make([]validatedItem, 0, len(in.Items))
	requested := make(map[string]int, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 || !line.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		if !product.IsActive {
			return nil, domain.ErrProductInactive
		}
		requested[line.ProductID] += line.Quantity
		if product.Quantity < requested[line.ProductID] {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   requested[line.ProductID],
			}
		}
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)
		items = append(items, validatedItem{
			productID: line.ProductID,
			quantity:  line.Quantity,
			price:     line.Price,
			total:     lineTotal,
		})
	}

	finalAmount := totalAmount.Sub(in.Discount).Add(in.Tax)
	now := uc.now()

	// Orden estable por producto al tomar los bloqueos de fila: dos ventas
	// concurrentes con productos en común adquieren los locks en el mismo
	// orden y no pueden interbloquearse. Un producto repetido en varias
	// líneas se bloquea una sola vez, con su demanda acumulada.
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Re-verificar disponibilidad bajo FOR UPDATE antes de descontar,
		// contra la demanda acumulada de cada producto.
		products := make(map[string]*entity.Product, len(productIDs))
		for _, productID := range productIDs {
			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if product.Quantity < requested[productID] {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Quantity,
					Requested:   requested[productID],
				}
			}
			products[productID] = product
		}

		// Consecutivo del día: incremento atómico sobre sale_counters dentro
		// de la misma transacción; la fila del contador serializa la
		// asignación frente a creaciones concurrentes.
		saleNumber, err := saleRepo.NextSaleNumber(now)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:            uuid.New().String(),
			SaleNumber:    saleNumber,
			TotalAmount:   totalAmount,
			Discount:      in.Discount,
			Tax:           in.Tax,
			FinalAmount:   finalAmount,
			PaymentMethod: in.PaymentMethod,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			Notes:         in.Notes,
			Status:        entity.SaleStatusCompleted,
			SoldByID:      actorID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for _, item := range items {
			saleItem := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.productID,
				Quantity:  item.quantity,
				Price:     item.price,
				Total:     item.total,
				CreatedAt: now,
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			sale.Items = append(sale.Items, *saleItem)

			product := products[item.productID]
			product.Quantity -= item.quantity
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
				return err
			}

			movement := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: item.productID,
				Type:      entity.MovementTypeOUT,
				Quantity:  item.quantity,
				Reason:    entity.MovementReasonSale,
				Reference: saleNumber,
				CreatedAt: now,
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Completar resumen de productos para la respuesta (lectura fuera de tx).
	for i := range sale.Items {
		if p, err := uc.productRepo.GetByID(sale.Items[i].ProductID); err == nil && p != nil {
			sale.Items[i].ProductName = p.Name
			sale.Items[i].ProductSKU = p.SKU
		}
	}
	return toSaleResponse(sale), nil
}
