package repository

import "github.com/phoenixdev100/Sales-Suite/internal/domain/entity"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string // nombre, SKU o descripción (insensible a mayúsculas)
	CategoryID string
	LowStock   bool // solo productos con quantity <= min_stock
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock() ([]*entity.Product, error)
	Delete(id string) error
	// HasSaleItems indica si el producto aparece en alguna línea de venta.
	HasSaleItems(id string) (bool, error)

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// la transacción en curso. Solo tiene sentido con un repo atado a una tx.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity fija el stock actual del producto. El caller ya validó
	// que el nuevo valor no sea negativo bajo el bloqueo de fila.
	UpdateQuantity(id string, quantity int) error
}
