package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange rango de fechas de un reporte.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesReportSummary totales del reporte de ventas.
type SalesReportSummary struct {
	TotalSales        int             `json:"totalSales"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	DateRange         DateRange       `json:"dateRange"`
}

// GroupedSales totales de ventas agrupados por período (día, semana o mes).
type GroupedSales struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// SalesReportResponse reporte de ventas (solo JSON; sin exportes CSV/PDF).
type SalesReportResponse struct {
	Sales       []SaleResponse     `json:"sales"`
	Summary     SalesReportSummary `json:"summary"`
	GroupedData []GroupedSales     `json:"groupedData"`
}

// InventoryReportSummary totales del reporte de inventario.
type InventoryReportSummary struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalValue      decimal.Decimal `json:"totalValue"` // suma de cost × quantity
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
}

// InventoryReportResponse reporte de inventario valorizado.
type InventoryReportResponse struct {
	Products []ProductResponse      `json:"products"`
	Summary  InventoryReportSummary `json:"summary"`
}

// ProfitEntry rentabilidad de una venta: ingreso, costo de adquisición y margen.
type ProfitEntry struct {
	SaleID       string          `json:"saleId"`
	SaleNumber   string          `json:"saleNumber"`
	Date         time.Time       `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"` // porcentaje sobre el ingreso
}

// ProfitReportSummary totales del reporte de rentabilidad.
type ProfitReportSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	OverallMargin decimal.Decimal `json:"overallMargin"`
	DateRange     DateRange       `json:"dateRange"`
}

// ProfitReportResponse reporte de rentabilidad por venta del rango.
type ProfitReportResponse struct {
	Sales   []ProfitEntry       `json:"sales"`
	Summary ProfitReportSummary `json:"summary"`
}
