package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

// PeriodTotals ingresos y número de ventas COMPLETED de un período.
type PeriodTotals struct {
	Revenue decimal.Decimal
	Count   int
}

// TopProductResult producto más vendido en una ventana de tiempo.
type TopProductResult struct {
	ProductID string
	Name      string
	SKU       string
	UnitsSold int
	SaleCount int
}

// TrendPoint punto de la serie diaria de ventas.
type TrendPoint struct {
	Day     time.Time
	Revenue decimal.Decimal
	Count   int
}

// SaleProfitRow ingresos y costo de adquisición de una venta COMPLETED.
// El costo sale de sumar cost × quantity de cada línea al precio de costo
// actual del producto.
type SaleProfitRow struct {
	SaleID     string
	SaleNumber string
	CreatedAt  time.Time
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
}

// CategoryPerformanceRow unidades e ingresos vendidos de una categoría.
type CategoryPerformanceRow struct {
	Category  string
	UnitsSold int
	Revenue   decimal.Decimal
}

// HourlyPoint ventas agregadas por hora del día (0-23).
type HourlyPoint struct {
	Hour    int
	Count   int
	Revenue decimal.Decimal
}

// CategoryInventoryRow inventario activo agregado por categoría: número de
// productos, unidades en bodega y valor al costo.
type CategoryInventoryRow struct {
	Category      string
	ProductCount  int
	TotalQuantity int
	Value         decimal.Decimal
}

// StockLevelDistribution conteo de productos activos por franja de stock.
// Las franjas salen del umbral mínimo de cada producto: sin stock, en o bajo
// el mínimo, normal, y por encima del doble del mínimo.
type StockLevelDistribution struct {
	OutOfStock int
	LowStock   int
	InStock    int
	OverStock  int
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
// No participa en transacciones; todas las operaciones reciben context.
type AnalyticsRepository interface {
	SalesTotalsSince(ctx context.Context, since time.Time) (PeriodTotals, error)
	CountActiveProducts(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
	CountOutOfStockProducts(ctx context.Context) (int, error)
	CountActiveUsers(ctx context.Context) (int, error)
	RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProductResult, error)
	SalesTrend(ctx context.Context, days int) ([]TrendPoint, error)
	// SalesInRange ventas COMPLETED del rango, con líneas, para reportes.
	SalesInRange(ctx context.Context, from, to time.Time) ([]*entity.Sale, error)
	// SalesWithCost ventas COMPLETED del rango con su costo de adquisición,
	// para el reporte de rentabilidad.
	SalesWithCost(ctx context.Context, from, to time.Time) ([]SaleProfitRow, error)
	CategoryPerformance(ctx context.Context, since time.Time) ([]CategoryPerformanceRow, error)
	SalesByHour(ctx context.Context, since time.Time) ([]HourlyPoint, error)
	InventoryByCategory(ctx context.Context) ([]CategoryInventoryRow, error)
	StockLevels(ctx context.Context) (StockLevelDistribution, error)
}
