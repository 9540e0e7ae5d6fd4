package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phoenixdev100/Sales-Suite/internal/domain"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

// memProductRepo repo de productos en memoria. saleHistory marca productos con
// líneas de venta para el chequeo de borrado.
type memProductRepo struct {
	products    map[string]*entity.Product
	saleHistory map[string]bool
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products:    make(map[string]*entity.Product),
		saleHistory: make(map[string]bool),
	}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) UpdateQuantity(id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.LowStock && !p.LowStock() {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.LowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) HasSaleItems(id string) (bool, error) {
	return r.saleHistory[id], nil
}

// memCategoryRepo repo de categorías en memoria con conteo de productos.
type memCategoryRepo struct {
	categories    map[string]*entity.Category
	productCounts map[string]int
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		categories:    make(map[string]*entity.Category),
		productCounts: make(map[string]int),
	}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List() ([]*entity.Category, map[string]int, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, r.productCounts, nil
}

func (r *memCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) CountProducts(id string) (int, error) {
	return r.productCounts[id], nil
}

// memMovementRepo libro de inventario en memoria, append-only.
type memMovementRepo struct {
	movements []entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.movements {
		if r.movements[i].ProductID == productID {
			cp := r.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.movements {
		if r.movements[i].Reference == reference {
			cp := r.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memCatalogRunner pasa los repos en memoria directamente; los tests no
// necesitan rollback porque las validaciones de negocio se ejecutan antes de
// cualquier escritura.
type memCatalogRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (r *memCatalogRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(r.products, r.movements)
}

// memUserRepo repo de usuarios en memoria. saleCounts y saleRevenue simulan
// las ventas registradas por usuario.
type memUserRepo struct {
	users       map[string]*entity.User
	saleCounts  map[string]int
	saleRevenue map[string]decimal.Decimal
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:       make(map[string]*entity.User),
		saleCounts:  make(map[string]int),
		saleRevenue: make(map[string]decimal.Decimal),
	}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdatePassword(id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) SetActive(id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepo) List(filter repository.UserFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) CountSales(id string) (int, error) {
	return r.saleCounts[id], nil
}

func (r *memUserRepo) CountAll() (int, int, error) {
	total, active := 0, 0
	for _, u := range r.users {
		total++
		if u.IsActive {
			active++
		}
	}
	return total, active, nil
}

func (r *memUserRepo) CountByRole() ([]repository.RoleCount, error) {
	counts := make(map[string]int)
	for _, u := range r.users {
		counts[u.Role]++
	}
	roles := make([]string, 0, len(counts))
	for role := range counts {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	out := make([]repository.RoleCount, 0, len(roles))
	for _, role := range roles {
		out = append(out, repository.RoleCount{Role: role, Count: counts[role]})
	}
	return out, nil
}

func (r *memUserRepo) TopSalespeople(since time.Time, limit int) ([]repository.SalespersonStats, error) {
	var out []repository.SalespersonStats
	for _, u := range r.users {
		if u.Role != entity.RoleSalesperson || !u.IsActive {
			continue
		}
		revenue := r.saleRevenue[u.ID]
		out = append(out, repository.SalespersonStats{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			SaleCount: r.saleCounts[u.ID],
			Revenue:   revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleCount > out[j].SaleCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
