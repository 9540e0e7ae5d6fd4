package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// ReportUseCase reportes de ventas e inventario en JSON. Los exportes con
// formato (CSV/PDF) quedan fuera del alcance del API.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo}
}

// SalesReport ventas COMPLETED del rango con totales agrupados por período.
// Sin fechas, el rango por defecto son los últimos 30 días.
// groupBy acepta "day", "week" o "month" (por defecto "day").
func (uc *ReportUseCase) SalesReport(ctx context.Context, dateFrom, dateTo, groupBy string) (*dto.SalesReportResponse, error) {
	from, to, err := reportRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	if groupBy == "" {
		groupBy = "day"
	}

	sales, err := uc.analyticsRepo.SalesInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, s := range sales {
		totalRevenue = totalRevenue.Add(s.FinalAmount)
	}
	avg := decimal.Zero
	if len(sales) > 0 {
		avg = totalRevenue.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}

	return &dto.SalesReportResponse{
		Sales: toSaleResponses(sales),
		Summary: dto.SalesReportSummary{
			TotalSales:        len(sales),
			TotalRevenue:      totalRevenue.Round(2),
			AverageOrderValue: avg,
			DateRange:         dto.DateRange{From: from, To: to},
		},
		GroupedData: groupSales(sales, groupBy),
	}, nil
}

// InventoryReport inventario valorizado (cost × quantity) con resumen de
// stock bajo. lowStockOnly restringe el listado a los productos en alerta.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, lowStockOnly bool) (*dto.InventoryReportResponse, error) {
	filter := repository.ProductFilter{LowStock: lowStockOnly, SortBy: "name", SortOrder: "asc", Limit: 10000}
	products, _, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}

	totalValue := decimal.Zero
	lowStock := 0
	outOfStock := 0
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		totalValue = totalValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.LowStock() {
			lowStock++
		}
		if p.Quantity == 0 {
			outOfStock++
		}
		out = append(out, dto.ProductResponse{
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
		})
	}

	return &dto.InventoryReportResponse{
		Products: out,
		Summary: dto.InventoryReportSummary{
			TotalProducts:   len(products),
			TotalValue:      totalValue.Round(2),
			LowStockCount:   lowStock,
			OutOfStockCount: outOfStock,
		},
	}, nil
}

// ProfitReport rentabilidad por venta del rango: ingreso de cada venta
// COMPLETED contra el costo de adquisición de sus líneas, con margen
// porcentual sobre el ingreso. Sin fechas, el rango por defecto son los
// últimos 30 días.
func (uc *ReportUseCase) ProfitReport(ctx context.Context, dateFrom, dateTo string) (*dto.ProfitReportResponse, error) {
	from, to, err := reportRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	rows, err := uc.analyticsRepo.SalesWithCost(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de rentabilidad: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	entries := make([]dto.ProfitEntry, 0, len(rows))
	for _, row := range rows {
		profit := row.Revenue.Sub(row.Cost)
		margin := decimal.Zero
		if row.Revenue.IsPositive() {
			margin = profit.Div(row.Revenue).Mul(hundred).Round(2)
		}
		totalRevenue = totalRevenue.Add(row.Revenue)
		totalCost = totalCost.Add(row.Cost)
		entries = append(entries, dto.ProfitEntry{
			SaleID:       row.SaleID,
			SaleNumber:   row.SaleNumber,
			Date:         row.CreatedAt,
			Revenue:      row.Revenue,
			Cost:         row.Cost,
			Profit:       profit,
			ProfitMargin: margin,
		})
	}

	totalProfit := totalRevenue.Sub(totalCost)
	overall := decimal.Zero
	if totalRevenue.IsPositive() {
		overall = totalProfit.Div(totalRevenue).Mul(hundred).Round(2)
	}

	return &dto.ProfitReportResponse{
		Sales: entries,
		Summary: dto.ProfitReportSummary{
			TotalRevenue:  totalRevenue.Round(2),
			TotalCost:     totalCost.Round(2),
			TotalProfit:   totalProfit.Round(2),
			OverallMargin: overall,
			DateRange:     dto.DateRange{From: from, To: to},
		},
	}, nil
}

// reportRange interpreta fechas YYYY-MM-DD; sin fechas, el rango son los
// últimos 30 días. dateTo es inclusivo hasta el final del día.
func reportRange(dateFrom, dateTo string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if dateFrom != "" {
		t, err := time.Parse("2006-01-02", dateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		from = t
	}
	if dateTo != "" {
		t, err := time.Parse("2006-01-02", dateTo)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

// groupSales agrega los totales por día, semana ISO o mes calendario.
func groupSales(sales []*entity.Sale, groupBy string) []dto.GroupedSales {
	buckets := make(map[string]*dto.GroupedSales)
	order := make([]string, 0)
	for _, s := range sales {
		var key string
		switch groupBy {
		case "week":
			year, week := s.CreatedAt.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		case "month":
			key = s.CreatedAt.Format("2006-01")
		default:
			key = s.CreatedAt.Format("2006-01-02")
		}
		b, ok := buckets[key]
		if !ok {
			b = &dto.GroupedSales{Period: key, Revenue: decimal.Zero}
			buckets[key] = b
			order = append(order, key)
		}
		b.Revenue = b.Revenue.Add(s.FinalAmount)
		b.Count++
	}
	out := make([]dto.GroupedSales, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.Revenue = b.Revenue.Round(2)
		out = append(out, *b)
	}
	return out
}
