package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SalesTotalsSince ingresos y número de ventas COMPLETED creadas desde el instante dado.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) SalesTotalsSince(ctx context.Context, since time.Time) (repository.PeriodTotals, error) {
	const query = `
		SELECT COALESCE(SUM(final_amount), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND created_at >= $2`
	var totals repository.PeriodTotals
	err := r.pool.QueryRow(ctx, query, entity.SaleStatusCompleted, since).
		Scan(&totals.Revenue, &totals.Count)
	if err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("analytics.SalesTotalsSince: %w", err)
	}
	return totals, nil
}

// CountActiveProducts número de productos activos del catálogo.
func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM products WHERE is_active = true`, "CountActiveProducts")
}

// CountLowStockProducts productos activos en o por debajo de su umbral mínimo.
func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context) (int, error) {
	return r.countQuery(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = true AND quantity <= min_stock`,
		"CountLowStockProducts")
}

// CountOutOfStockProducts productos activos con stock en cero.
func (r *AnalyticsRepo) CountOutOfStockProducts(ctx context.Context) (int, error) {
	return r.countQuery(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = true AND quantity = 0`,
		"CountOutOfStockProducts")
}

// CountActiveUsers número de cuentas activas.
func (r *AnalyticsRepo) CountActiveUsers(ctx context.Context) (int, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM users WHERE is_active = true`, "CountActiveUsers")
}

func (r *AnalyticsRepo) countQuery(ctx context.Context, query, name string) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.%s: %w", name, err)
	}
	return count, nil
}

// RecentSales últimas ventas registradas (cualquier estado), con vendedor.
func (r *AnalyticsRepo) RecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	const query = `
		SELECT s.id, s.sale_number, s.total_amount, s.discount, s.tax, s.final_amount,
		       COALESCE(s.customer_name, ''), s.status, s.sold_by_id, s.created_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM sales s
		LEFT JOIN users u ON u.id = s.sold_by_id
		ORDER BY s.created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentSales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SaleNumber, &s.TotalAmount, &s.Discount, &s.Tax, &s.FinalAmount,
			&s.CustomerName, &s.Status, &s.SoldByID, &s.CreatedAt,
			&s.SoldByFirstName, &s.SoldByLastName); err != nil {
			return nil, fmt.Errorf("analytics.RecentSales scan: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TopProducts los `limit` productos con más unidades vendidas desde el instante dado.
// Solo cuenta ventas COMPLETED.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
		SELECT p.id, p.name, p.sku,
		       COALESCE(SUM(i.quantity), 0)      AS units_sold,
		       COUNT(DISTINCT s.id)              AS sale_count
		FROM sale_items i
		JOIN sales    s ON s.id = i.sale_id
		JOIN products p ON p.id = i.product_id
		WHERE s.status = $1 AND s.created_at >= $2
		GROUP BY p.id, p.name, p.sku
		ORDER BY units_sold DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, since, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.UnitsSold, &row.SaleCount); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesTrend serie diaria de ingresos y número de ventas COMPLETED de los
// últimos `days` días. Los días sin ventas no aparecen en el resultado.
func (r *AnalyticsRepo) SalesTrend(ctx context.Context, days int) ([]repository.TrendPoint, error) {
	const query = `
		SELECT DATE_TRUNC('day', created_at) AS day,
		       COALESCE(SUM(final_amount), 0),
		       COUNT(*)
		FROM sales
		WHERE status = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day`
	since := time.Now().AddDate(0, 0, -days)
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesTrend: %w", err)
	}
	defer rows.Close()

	var points []repository.TrendPoint
	for rows.Next() {
		var p repository.TrendPoint
		if err := rows.Scan(&p.Day, &p.Revenue, &p.Count); err != nil {
			return nil, fmt.Errorf("analytics.SalesTrend scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// SalesInRange ventas COMPLETED del rango, con líneas, para reportes.
func (r *AnalyticsRepo) SalesInRange(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	const query = `
		SELECT s.id, s.sale_number, s.total_amount, s.discount, s.tax, s.final_amount,
		       COALESCE(s.customer_name, ''), s.status, s.sold_by_id, s.created_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM sales s
		LEFT JOIN users u ON u.id = s.sold_by_id
		WHERE s.status = $1 AND s.created_at BETWEEN $2 AND $3
		ORDER BY s.created_at`
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesInRange: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SaleNumber, &s.TotalAmount, &s.Discount, &s.Tax, &s.FinalAmount,
			&s.CustomerName, &s.Status, &s.SoldByID, &s.CreatedAt,
			&s.SoldByFirstName, &s.SoldByLastName); err != nil {
			return nil, fmt.Errorf("analytics.SalesInRange scan: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	saleRepo := NewSaleRepository(r.pool)
	for _, s := range list {
		items, err := saleRepo.GetItems(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

// SalesWithCost ventas COMPLETED del rango con su costo de adquisición.
// El costo se valora al precio de costo actual del producto; líneas de
// productos eliminados del catálogo cuestan cero.
func (r *AnalyticsRepo) SalesWithCost(ctx context.Context, from, to time.Time) ([]repository.SaleProfitRow, error) {
	const query = `
		SELECT s.id, s.sale_number, s.created_at, s.final_amount,
		       COALESCE(SUM(i.quantity * p.cost), 0) AS cost
		FROM sales s
		LEFT JOIN sale_items i ON i.sale_id = s.id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE s.status = $1 AND s.created_at BETWEEN $2 AND $3
		GROUP BY s.id, s.sale_number, s.created_at, s.final_amount
		ORDER BY s.created_at`
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesWithCost: %w", err)
	}
	defer rows.Close()

	var list []repository.SaleProfitRow
	for rows.Next() {
		var row repository.SaleProfitRow
		if err := rows.Scan(&row.SaleID, &row.SaleNumber, &row.CreatedAt, &row.Revenue, &row.Cost); err != nil {
			return nil, fmt.Errorf("analytics.SalesWithCost scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CategoryPerformance unidades e ingresos vendidos por categoría desde el
// instante dado. Solo cuenta ventas COMPLETED; ordena por ingresos.
func (r *AnalyticsRepo) CategoryPerformance(ctx context.Context, since time.Time) ([]repository.CategoryPerformanceRow, error) {
	const query = `
		SELECT c.name,
		       COALESCE(SUM(i.quantity), 0) AS units_sold,
		       COALESCE(SUM(i.total), 0)    AS revenue
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		JOIN products p ON p.id = i.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE s.status = $1 AND s.created_at >= $2
		GROUP BY c.name
		ORDER BY revenue DESC`
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.CategoryPerformance: %w", err)
	}
	defer rows.Close()

	var list []repository.CategoryPerformanceRow
	for rows.Next() {
		var row repository.CategoryPerformanceRow
		if err := rows.Scan(&row.Category, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.CategoryPerformance scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesByHour ventas COMPLETED agregadas por hora del día desde el instante
// dado. Las horas sin ventas no aparecen; el caso de uso completa las 24.
func (r *AnalyticsRepo) SalesByHour(ctx context.Context, since time.Time) ([]repository.HourlyPoint, error) {
	const query = `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*),
		       COALESCE(SUM(final_amount), 0)
		FROM sales
		WHERE status = $1 AND created_at >= $2
		GROUP BY hour
		ORDER BY hour`
	rows, err := r.pool.Query(ctx, query, entity.SaleStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByHour: %w", err)
	}
	defer rows.Close()

	var list []repository.HourlyPoint
	for rows.Next() {
		var p repository.HourlyPoint
		if err := rows.Scan(&p.Hour, &p.Count, &p.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.SalesByHour scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// InventoryByCategory inventario activo agregado por categoría, valorado al costo.
func (r *AnalyticsRepo) InventoryByCategory(ctx context.Context) ([]repository.CategoryInventoryRow, error) {
	const query = `
		SELECT c.name,
		       COUNT(*),
		       COALESCE(SUM(p.quantity), 0),
		       COALESCE(SUM(p.cost * p.quantity), 0)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = true
		GROUP BY c.name
		ORDER BY c.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.InventoryByCategory: %w", err)
	}
	defer rows.Close()

	var list []repository.CategoryInventoryRow
	for rows.Next() {
		var row repository.CategoryInventoryRow
		if err := rows.Scan(&row.Category, &row.ProductCount, &row.TotalQuantity, &row.Value); err != nil {
			return nil, fmt.Errorf("analytics.InventoryByCategory scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// StockLevels distribución de los productos activos por franja de stock.
func (r *AnalyticsRepo) StockLevels(ctx context.Context) (repository.StockLevelDistribution, error) {
	const query = `
		SELECT COUNT(*) FILTER (WHERE quantity = 0),
		       COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= min_stock),
		       COUNT(*) FILTER (WHERE quantity > min_stock AND quantity <= min_stock * 2),
		       COUNT(*) FILTER (WHERE quantity > min_stock * 2)
		FROM products
		WHERE is_active = true`
	var d repository.StockLevelDistribution
	err := r.pool.QueryRow(ctx, query).Scan(&d.OutOfStock, &d.LowStock, &d.InStock, &d.OverStock)
	if err != nil {
		return repository.StockLevelDistribution{}, fmt.Errorf("analytics.StockLevels: %w", err)
	}
	return d, nil
}
