package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary ingresos y conteo de ventas de un período del dashboard.
type PeriodSummary struct {
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// TopProductDTO producto más vendido (ventana de 30 días).
type TopProductDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	UnitsSold int    `json:"unitsSold"`
	SaleCount int    `json:"saleCount"`
}

// TrendPointDTO punto de la serie diaria de ventas.
type TrendPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// CategoryPerformanceDTO unidades e ingresos vendidos de una categoría.
type CategoryPerformanceDTO struct {
	Category  string          `json:"category"`
	UnitsSold int             `json:"unitsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// HourlySalesDTO ventas agregadas en una hora del día.
type HourlySalesDTO struct {
	Hour    int             `json:"hour"` // 0-23
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesAnalyticsResponse analítica de ventas del período: tendencia diaria,
// desempeño por categoría y distribución horaria.
type SalesAnalyticsResponse struct {
	SalesTrend          []TrendPointDTO          `json:"salesTrend"`
	CategoryPerformance []CategoryPerformanceDTO `json:"categoryPerformance"`
	SalesByHour         []HourlySalesDTO         `json:"salesByHour"`
	PeriodDays          int                      `json:"periodDays"`
}

// CategoryDistributionDTO productos y unidades activos de una categoría.
type CategoryDistributionDTO struct {
	Category      string `json:"category"`
	ProductCount  int    `json:"productCount"`
	TotalQuantity int    `json:"totalQuantity"`
}

// CategoryValueDTO valor del inventario de una categoría al costo.
type CategoryValueDTO struct {
	Category     string          `json:"category"`
	Value        decimal.Decimal `json:"value"`
	ProductCount int             `json:"productCount"`
}

// StockLevelsDTO conteo de productos activos por franja de stock.
type StockLevelsDTO struct {
	OutOfStock int `json:"outOfStock"`
	LowStock   int `json:"lowStock"`
	InStock    int `json:"inStock"`
	OverStock  int `json:"overStock"`
}

// InventoryAnalyticsResponse analítica de inventario: distribución por
// categoría, franjas de stock y valor al costo por categoría.
type InventoryAnalyticsResponse struct {
	CategoryDistribution []CategoryDistributionDTO `json:"categoryDistribution"`
	StockLevels          StockLevelsDTO            `json:"stockLevels"`
	InventoryValue       []CategoryValueDTO        `json:"inventoryValue"`
}

// DashboardOverviewResponse resumen general del dashboard.
type DashboardOverviewResponse struct {
	TodaySales      PeriodSummary   `json:"todaySales"`
	MonthSales      PeriodSummary   `json:"monthSales"`
	YearSales       PeriodSummary   `json:"yearSales"`
	TotalProducts   int             `json:"totalProducts"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	TotalUsers      int             `json:"totalUsers"`
	RecentSales     []SaleResponse  `json:"recentSales"`
	TopProducts     []TopProductDTO `json:"topProducts"`
	SalesTrend      []TrendPointDTO `json:"salesTrend"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}
