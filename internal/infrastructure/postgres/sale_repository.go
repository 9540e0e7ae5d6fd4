package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, total_amount, discount, tax, final_amount,
		                   payment_method, customer_name, customer_email, customer_phone,
		                   notes, status, sold_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.TotalAmount, sale.Discount, sale.Tax, sale.FinalAmount,
		sale.PaymentMethod, sale.CustomerName, nullIfEmpty(sale.CustomerEmail), nullIfEmpty(sale.CustomerPhone),
		nullIfEmpty(sale.Notes), sale.Status, sale.SoldByID, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// sales.sale_number es único; el contador por día lo garantiza,
			// el constraint es la última defensa.
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.Price, item.Total, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas y el resumen del vendedor.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT s.id, s.sale_number, s.total_amount, s.discount, s.tax, s.final_amount,
		       s.payment_method, COALESCE(s.customer_name, ''), COALESCE(s.customer_email, ''),
		       COALESCE(s.customer_phone, ''), COALESCE(s.notes, ''), s.status, s.sold_by_id,
		       s.created_at, s.updated_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM sales s
		LEFT JOIN users u ON u.id = s.sold_by_id
		WHERE s.id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleNumber, &s.TotalAmount, &s.Discount, &s.Tax, &s.FinalAmount,
		&s.PaymentMethod, &s.CustomerName, &s.CustomerEmail, &s.CustomerPhone,
		&s.Notes, &s.Status, &s.SoldByID, &s.CreatedAt, &s.UpdatedAt,
		&s.SoldByFirstName, &s.SoldByLastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.GetItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// GetItems devuelve las líneas de la venta con resumen del producto.
func (r *SaleRepo) GetItems(saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.price, i.total, i.created_at,
		       COALESCE(p.name, ''), COALESCE(p.sku, '')
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.created_at, i.id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price, &it.Total,
			&it.CreatedAt, &it.ProductName, &it.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// UpdateStatusFrom cambia el estado solo si el actual coincide con `from`.
// El UPDATE condicional bloquea la fila hasta el commit: de dos transacciones
// concurrentes sobre la misma venta, la segunda ve el estado ya cambiado y
// recibe false.
func (r *SaleRepo) UpdateStatusFrom(id, from, to string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("update sale status from: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista ventas con filtros dinámicos, orden y paginación.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(s.sale_number ILIKE %s OR s.customer_name ILIKE %s OR s.customer_email ILIKE %s)", p, p, p))
	}
	if filter.Status != "" {
		conds = append(conds, "s.status = "+arg(filter.Status))
	}
	if filter.DateFrom != nil {
		conds = append(conds, "s.created_at >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conds = append(conds, "s.created_at <= "+arg(*filter.DateTo))
	}
	if filter.SoldByID != "" {
		conds = append(conds, "s.sold_by_id = "+arg(filter.SoldByID))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `
		SELECT s.id, s.sale_number, s.total_amount, s.discount, s.tax, s.final_amount,
		       s.payment_method, COALESCE(s.customer_name, ''), COALESCE(s.customer_email, ''),
		       COALESCE(s.customer_phone, ''), COALESCE(s.notes, ''), s.status, s.sold_by_id,
		       s.created_at, s.updated_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM sales s
		LEFT JOIN users u ON u.id = s.sold_by_id` + where +
		` ORDER BY ` + saleOrderBy(filter.SortBy, filter.SortOrder) +
		` LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SaleNumber, &s.TotalAmount, &s.Discount, &s.Tax, &s.FinalAmount,
			&s.PaymentMethod, &s.CustomerName, &s.CustomerEmail, &s.CustomerPhone,
			&s.Notes, &s.Status, &s.SoldByID, &s.CreatedAt, &s.UpdatedAt,
			&s.SoldByFirstName, &s.SoldByLastName); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, s := range list {
		items, err := r.GetItems(s.ID)
		if err != nil {
			return nil, 0, err
		}
		s.Items = items
	}
	return list, total, nil
}

// StatsSince devuelve ingresos y número de ventas COMPLETED desde el instante dado.
func (r *SaleRepo) StatsSince(since time.Time) (decimal.Decimal, int, error) {
	var revenue decimal.Decimal
	var count int
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(final_amount), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND created_at >= $2`,
		entity.SaleStatusCompleted, since,
	).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sale stats: %w", err)
	}
	return revenue, count, nil
}

// NextSaleNumber reserva el siguiente consecutivo del día con un upsert
// atómico sobre sale_counters. El UPDATE bloquea la fila del día hasta el
// commit, de modo que dos ventas concurrentes nunca obtienen la misma
// secuencia. Debe invocarse dentro de la transacción de la venta.
func (r *SaleRepo) NextSaleNumber(day time.Time) (string, error) {
	var seq int
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO sale_counters (day, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = sale_counters.last_seq + 1
		RETURNING last_seq`,
		day.Format("2006-01-02"),
	).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("next sale number: %w", err)
	}
	return entity.FormatSaleNumber(day, seq), nil
}

// saleOrderBy arma la cláusula ORDER BY con lista blanca de columnas.
func saleOrderBy(sortBy, sortOrder string) string {
	col := "s.created_at"
	switch sortBy {
	case "saleNumber", "sale_number":
		col = "s.sale_number"
	case "finalAmount", "final_amount":
		col = "s.final_amount"
	case "status":
		col = "s.status"
	case "createdAt", "created_at":
		col = "s.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
