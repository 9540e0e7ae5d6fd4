package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// GetByID devuelve una venta con sus líneas y el resumen del vendedor.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return toSaleResponse(sale), nil
}

// List lista ventas con búsqueda, filtros y paginación.
func (uc *SaleUseCase) List(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{
		Search:    in.Search,
		Status:    in.Status,
		SoldByID:  in.SoldBy,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
		Limit:     in.Limit,
		Offset:    in.Offset(),
	}
	if in.DateFrom != "" {
		t, err := time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.DateFrom = &t
	}
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo hasta el final del día.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	list, total, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Sales:      out,
		Pagination: dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}

// Stats devuelve ingresos, número de ventas y ticket promedio de las ventas
// COMPLETED del período móvil de periodDays días. El promedio es 0 cuando no
// hay ventas (guarda contra división por cero).
func (uc *SaleUseCase) Stats(ctx context.Context, periodDays int) (*dto.SaleStatsResponse, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	since := uc.now().AddDate(0, 0, -periodDays)
	revenue, count, err := uc.saleRepo.StatsSince(since)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return &dto.SaleStatsResponse{
		TotalRevenue:      revenue,
		TotalSales:        count,
		AverageOrderValue: avg,
		Period:            periodDays,
	}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		item := dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		}
		if it.ProductName != "" || it.ProductSKU != "" {
			item.Product = &dto.ProductSummary{ID: it.ProductID, Name: it.ProductName, SKU: it.ProductSKU}
		}
		items = append(items, item)
	}
	resp := &dto.SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		Tax:           s.Tax,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: s.PaymentMethod,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		CustomerPhone: s.CustomerPhone,
		Notes:         s.Notes,
		Status:        s.Status,
		SoldByID:      s.SoldByID,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
	if s.SoldByFirstName != "" || s.SoldByLastName != "" {
		resp.SoldBy = &dto.SellerSummary{ID: s.SoldByID, FirstName: s.SoldByFirstName, LastName: s.SoldByLastName}
	}
	return resp
}
