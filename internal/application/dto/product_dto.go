package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"max=500"`
	SKU         string          `json:"sku" validate:"required,min=2,max=50"`
	Barcode     *string         `json:"barcode" validate:"omitempty,max=50"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	MinStock    int             `json:"minStock" validate:"min=0"`
	MaxStock    int             `json:"maxStock" validate:"min=1"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
// Un cambio de Quantity registra un movimiento "Manual adjustment" en el libro.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku" validate:"omitempty,min=2,max=50"`
	Barcode     *string          `json:"barcode"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Quantity    *int             `json:"quantity" validate:"omitempty,min=0"`
	MinStock    *int             `json:"minStock"`
	MaxStock    *int             `json:"maxStock"`
	CategoryID  *string          `json:"categoryId"`
	ImageURL    *string          `json:"imageUrl"`
	IsActive    *bool            `json:"isActive"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	Barcode     *string          `json:"barcode,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Cost        decimal.Decimal  `json:"cost"`
	Quantity    int              `json:"quantity"`
	MinStock    int              `json:"minStock"`
	MaxStock    int              `json:"maxStock"`
	CategoryID  string           `json:"categoryId"`
	Category    *CategorySummary `json:"category,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	IsActive    bool             `json:"isActive"`
	LowStock    bool             `json:"lowStock"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CategorySummary referencia corta a la categoría en respuestas de producto.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	PageRequest
	Search    string `query:"search"`
	Category  string `query:"category"`
	LowStock  bool   `query:"lowStock"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products      []ProductResponse `json:"products"`
	Pagination    PageResponse      `json:"pagination"`
	LowStockCount int               `json:"lowStockCount"`
}
