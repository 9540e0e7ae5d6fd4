package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de la canasta: producto, cantidad y precio unitario.
type SaleItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerName  string            `json:"customerName" validate:"max=100"`
	CustomerEmail string            `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string            `json:"customerPhone" validate:"max=20"`
	PaymentMethod string            `json:"paymentMethod" validate:"max=50"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	Notes         string            `json:"notes" validate:"max=500"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// ProductSummary referencia corta al producto en líneas de venta.
type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// SellerSummary referencia corta al usuario que registró la venta.
type SellerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SaleResponse salida de una venta con líneas y consecutivo asignado.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"saleNumber"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	FinalAmount   decimal.Decimal    `json:"finalAmount"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Status        string             `json:"status"`
	SoldByID      string             `json:"soldById"`
	SoldBy        *SellerSummary     `json:"soldBy,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SaleListRequest filtros del listado de ventas.
type SaleListRequest struct {
	PageRequest
	Search    string `query:"search"`
	Status    string `query:"status"`
	DateFrom  string `query:"dateFrom"`
	DateTo    string `query:"dateTo"`
	SoldBy    string `query:"soldBy"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Sales      []SaleResponse `json:"sales"`
	Pagination PageResponse   `json:"pagination"`
}

// SaleStatsResponse agregado de ventas COMPLETED del período móvil.
type SaleStatsResponse struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalSales        int             `json:"totalSales"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	Period            int             `json:"period"`
}
