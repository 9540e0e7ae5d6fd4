package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, sku, barcode, price, cost, quantity, min_stock, max_stock, category_id, image_url, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SKU, product.Barcode,
		product.Price, product.Cost, product.Quantity, product.MinStock, product.MaxStock,
		product.CategoryID, nullIfEmpty(product.ImageURL), product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate bloquea la fila del producto dentro de la transacción en curso.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	var imageURL *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.Price, &p.Cost,
		&p.Quantity, &p.MinStock, &p.MaxStock, &p.CategoryID, &imageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	return &p, nil
}

// Update actualiza un producto existente, incluida la cantidad en stock.
// El ajuste del libro de inventario lo registra el caso de uso en la misma tx.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, sku = $4, barcode = $5, price = $6, cost = $7,
		    quantity = $8, min_stock = $9, max_stock = $10, category_id = $11,
		    image_url = $12, is_active = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.SKU, product.Barcode,
		product.Price, product.Cost, product.Quantity, product.MinStock, product.MaxStock,
		product.CategoryID, nullIfEmpty(product.ImageURL), product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity fija el stock actual del producto. El caller valida el nuevo
// valor bajo el bloqueo de fila; el CHECK quantity >= 0 es la última defensa.
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// List lista productos con filtros dinámicos, orden y paginación.
// Devuelve también el total sin paginar para armar la respuesta de páginas.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR sku ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if filter.CategoryID != "" {
		conds = append(conds, "category_id = "+arg(filter.CategoryID))
	}
	if filter.LowStock {
		conds = append(conds, "quantity <= min_stock")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY ` + productOrderBy(filter.SortBy, filter.SortOrder) +
		` LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, rows.Err()
}

// ListLowStock devuelve los productos activos en o por debajo del umbral mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE quantity <= min_stock AND is_active = true
		ORDER BY quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()

	list, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	return list, rows.Err()
}

// HasSaleItems indica si el producto aparece en alguna línea de venta.
func (r *ProductRepo) HasSaleItems(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product sale items: %w", err)
	}
	return exists, nil
}

// Delete elimina un producto por ID. El caso de uso ya verificó que no tenga
// historial de ventas.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var imageURL *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.Price, &p.Cost,
			&p.Quantity, &p.MinStock, &p.MaxStock, &p.CategoryID, &imageURL,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if imageURL != nil {
			p.ImageURL = *imageURL
		}
		list = append(list, &p)
	}
	return list, nil
}

// productOrderBy arma la cláusula ORDER BY con lista blanca de columnas:
// SortBy y SortOrder vienen de la query string y no pueden interpolarse tal cual.
func productOrderBy(sortBy, sortOrder string) string {
	col := "created_at"
	switch sortBy {
	case "name":
		col = "name"
	case "price":
		col = "price"
	case "quantity":
		col = "quantity"
	case "sku":
		col = "sku"
	case "createdAt", "created_at":
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
