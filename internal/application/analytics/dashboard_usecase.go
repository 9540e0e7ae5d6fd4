// Package analytics contiene los casos de uso de solo lectura: el resumen del
// dashboard y los reportes de ventas e inventario. No hay invariantes que
// proteger aquí; todo es agregación delegada al repositorio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // productos en el widget de top ventas
	dashboardRecentSales = 10 // ventas recientes listadas
	dashboardTrendDays   = 7  // días de la serie de tendencia
	analyticsDefaultDays = 30 // ventana por defecto de la analítica de ventas
)

// DashboardUseCase genera el resumen general: ventas de hoy/mes/año, conteos
// de catálogo y usuarios, ventas recientes, top de productos y tendencia.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Overview arma el DashboardOverviewResponse. Los tres períodos de ventas se
// consultan en paralelo; el resto de consultas son lecturas rápidas de conteo.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*dto.DashboardOverviewResponse, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		totals repository.PeriodTotals
		err    error
	}
	dayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	yearCh := make(chan totalsResult, 1)
	go func() {
		t, err := uc.analyticsRepo.SalesTotalsSince(ctx, dayStart)
		dayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.SalesTotalsSince(ctx, monthStart)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.SalesTotalsSince(ctx, yearStart)
		yearCh <- totalsResult{t, err}
	}()

	day := <-dayCh
	month := <-monthCh
	year := <-yearCh
	if day.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", day.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if year.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del año: %w", year.err)
	}

	totalProducts, err := uc.analyticsRepo.CountActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", err)
	}
	lowStock, err := uc.analyticsRepo.CountLowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}
	outOfStock, err := uc.analyticsRepo.CountOutOfStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: sin stock: %w", err)
	}
	totalUsers, err := uc.analyticsRepo.CountActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: conteo de usuarios: %w", err)
	}
	recent, err := uc.analyticsRepo.RecentSales(ctx, dashboardRecentSales)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", err)
	}
	top, err := uc.analyticsRepo.TopProducts(ctx, now.AddDate(0, 0, -30), dashboardTopProducts)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", err)
	}
	trend, err := uc.analyticsRepo.SalesTrend(ctx, dashboardTrendDays)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tendencia: %w", err)
	}

	return &dto.DashboardOverviewResponse{
		TodaySales:      dto.PeriodSummary{Revenue: day.totals.Revenue.Round(2), Count: day.totals.Count},
		MonthSales:      dto.PeriodSummary{Revenue: month.totals.Revenue.Round(2), Count: month.totals.Count},
		YearSales:       dto.PeriodSummary{Revenue: year.totals.Revenue.Round(2), Count: year.totals.Count},
		TotalProducts:   totalProducts,
		LowStockCount:   lowStock,
		OutOfStockCount: outOfStock,
		TotalUsers:      totalUsers,
		RecentSales:     toSaleResponses(recent),
		TopProducts:     toTopProductDTOs(top),
		SalesTrend:      toTrendDTOs(trend),
		GeneratedAt:     now,
	}, nil
}

// SalesAnalytics analítica de ventas de los últimos periodDays días:
// tendencia diaria, desempeño por categoría y distribución por hora del día.
// Un período no positivo cae a la ventana por defecto de 30 días.
func (uc *DashboardUseCase) SalesAnalytics(ctx context.Context, periodDays int) (*dto.SalesAnalyticsResponse, error) {
	if periodDays <= 0 {
		periodDays = analyticsDefaultDays
	}
	since := time.Now().AddDate(0, 0, -periodDays)

	trend, err := uc.analyticsRepo.SalesTrend(ctx, periodDays)
	if err != nil {
		return nil, fmt.Errorf("analítica de ventas: tendencia: %w", err)
	}
	performance, err := uc.analyticsRepo.CategoryPerformance(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("analítica de ventas: categorías: %w", err)
	}
	hourly, err := uc.analyticsRepo.SalesByHour(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("analítica de ventas: horas: %w", err)
	}

	return &dto.SalesAnalyticsResponse{
		SalesTrend:          toTrendDTOs(trend),
		CategoryPerformance: toCategoryPerformanceDTOs(performance),
		SalesByHour:         fillHourlyDTOs(hourly),
		PeriodDays:          periodDays,
	}, nil
}

// InventoryAnalytics analítica de inventario activo: distribución por
// categoría, franjas de stock y valor al costo por categoría.
func (uc *DashboardUseCase) InventoryAnalytics(ctx context.Context) (*dto.InventoryAnalyticsResponse, error) {
	byCategory, err := uc.analyticsRepo.InventoryByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("analítica de inventario: categorías: %w", err)
	}
	levels, err := uc.analyticsRepo.StockLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("analítica de inventario: franjas de stock: %w", err)
	}

	distribution := make([]dto.CategoryDistributionDTO, 0, len(byCategory))
	values := make([]dto.CategoryValueDTO, 0, len(byCategory))
	for _, row := range byCategory {
		distribution = append(distribution, dto.CategoryDistributionDTO{
			Category:      row.Category,
			ProductCount:  row.ProductCount,
			TotalQuantity: row.TotalQuantity,
		})
		values = append(values, dto.CategoryValueDTO{
			Category:     row.Category,
			Value:        row.Value.Round(2),
			ProductCount: row.ProductCount,
		})
	}

	return &dto.InventoryAnalyticsResponse{
		CategoryDistribution: distribution,
		StockLevels: dto.StockLevelsDTO{
			OutOfStock: levels.OutOfStock,
			LowStock:   levels.LowStock,
			InStock:    levels.InStock,
			OverStock:  levels.OverStock,
		},
		InventoryValue: values,
	}, nil
}

func toCategoryPerformanceDTOs(list []repository.CategoryPerformanceRow) []dto.CategoryPerformanceDTO {
	out := make([]dto.CategoryPerformanceDTO, 0, len(list))
	for _, row := range list {
		out = append(out, dto.CategoryPerformanceDTO{
			Category:  row.Category,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue.Round(2),
		})
	}
	return out
}

// fillHourlyDTOs completa las 24 horas del día; las horas sin ventas quedan en cero.
func fillHourlyDTOs(list []repository.HourlyPoint) []dto.HourlySalesDTO {
	out := make([]dto.HourlySalesDTO, 24)
	for h := range out {
		out[h] = dto.HourlySalesDTO{Hour: h, Revenue: decimal.Zero}
	}
	for _, p := range list {
		if p.Hour < 0 || p.Hour > 23 {
			continue
		}
		out[p.Hour] = dto.HourlySalesDTO{Hour: p.Hour, Count: p.Count, Revenue: p.Revenue.Round(2)}
	}
	return out
}

func toSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		resp := dto.SaleResponse{
			ID:           s.ID,
			SaleNumber:   s.SaleNumber,
			TotalAmount:  s.TotalAmount,
			Discount:     s.Discount,
			Tax:          s.Tax,
			FinalAmount:  s.FinalAmount,
			CustomerName: s.CustomerName,
			Status:       s.Status,
			SoldByID:     s.SoldByID,
			Items:        []dto.SaleItemResponse{},
			CreatedAt:    s.CreatedAt,
		}
		if s.SoldByFirstName != "" || s.SoldByLastName != "" {
			resp.SoldBy = &dto.SellerSummary{ID: s.SoldByID, FirstName: s.SoldByFirstName, LastName: s.SoldByLastName}
		}
		out = append(out, resp)
	}
	return out
}

func toTopProductDTOs(list []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TopProductDTO{
			ProductID: t.ProductID,
			Name:      t.Name,
			SKU:       t.SKU,
			UnitsSold: t.UnitsSold,
			SaleCount: t.SaleCount,
		})
	}
	return out
}

func toTrendDTOs(list []repository.TrendPoint) []dto.TrendPointDTO {
	out := make([]dto.TrendPointDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.TrendPointDTO{
			Date:    p.Day.Format("2006-01-02"),
			Revenue: p.Revenue.Round(2),
			Count:   p.Count,
		})
	}
	return out
}
