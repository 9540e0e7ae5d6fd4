// seed puebla la base de datos con datos de demostración: usuarios (admin,
// gerente, vendedor), categorías y productos con stock inicial.
//
// Uso: go run ./cmd/seed
// Requiere la misma configuración de entorno que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
	"github.com/phoenixdev100/Sales-Suite/internal/infrastructure/postgres"
	"github.com/phoenixdev100/Sales-Suite/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)

	now := time.Now()

	// Usuarios de demostración. La contraseña de todos es "password123".
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}
	users := []*entity.User{
		{ID: uuid.New().String(), Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: entity.RoleAdmin},
		{ID: uuid.New().String(), Email: "manager@example.com", FirstName: "Manager", LastName: "User", Role: entity.RoleManager},
		{ID: uuid.New().String(), Email: "seller@example.com", FirstName: "Sales", LastName: "Person", Role: entity.RoleSalesperson},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		u.IsActive = true
		u.CreatedAt = now
		u.UpdatedAt = now
		if existing, _ := userRepo.GetByEmail(u.Email); existing != nil {
			fmt.Printf("usuario %s ya existe, omitido\n", u.Email)
			continue
		}
		if err := userRepo.Create(u); err != nil {
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		fmt.Printf("usuario creado: %s (%s)\n", u.Email, u.Role)
	}

	categories := []*entity.Category{
		{Name: "Electronics", Description: "Gadgets and devices"},
		{Name: "Groceries", Description: "Food and beverages"},
		{Name: "Stationery", Description: "Office and school supplies"},
	}
	categoryIDs := make(map[string]string)
	for _, c := range categories {
		if existing, _ := categoryRepo.GetByName(c.Name); existing != nil {
			categoryIDs[c.Name] = existing.ID
			fmt.Printf("categoría %s ya existe, omitida\n", c.Name)
			continue
		}
		c.ID = uuid.New().String()
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := categoryRepo.Create(c); err != nil {
			fmt.Fprintf(os.Stderr, "crear categoría %s: %v\n", c.Name, err)
			os.Exit(1)
		}
		categoryIDs[c.Name] = c.ID
		fmt.Printf("categoría creada: %s\n", c.Name)
	}

	type demoProduct struct {
		name, sku, category string
		price, cost         string
		quantity, minStock  int
	}
	demo := []demoProduct{
		{"Wireless Mouse", "ELEC-0001", "Electronics", "25.99", "14.50", 40, 5},
		{"USB-C Cable 1m", "ELEC-0002", "Electronics", "9.99", "3.20", 120, 20},
		{"Coffee Beans 500g", "GROC-0001", "Groceries", "12.50", "7.80", 60, 10},
		{"Sparkling Water 1L", "GROC-0002", "Groceries", "1.80", "0.90", 200, 30},
		{"Notebook A5", "STAT-0001", "Stationery", "4.50", "1.75", 150, 25},
		{"Ballpoint Pen (Blue)", "STAT-0002", "Stationery", "1.20", "0.35", 300, 50},
	}
	for _, d := range demo {
		if existing, _ := productRepo.GetBySKU(d.sku); existing != nil {
			fmt.Printf("producto %s ya existe, omitido\n", d.sku)
			continue
		}
		price, _ := decimal.NewFromString(d.price)
		cost, _ := decimal.NewFromString(d.cost)
		p := &entity.Product{
			ID:         uuid.New().String(),
			Name:       d.name,
			SKU:        d.sku,
			Price:      price,
			Cost:       cost,
			Quantity:   d.quantity,
			MinStock:   d.minStock,
			MaxStock:   1000,
			CategoryID: categoryIDs[d.category],
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", d.sku, err)
			os.Exit(1)
		}
		// Stock inicial al libro, igual que el alta vía API.
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  p.Quantity,
			Reason:    entity.MovementReasonInitial,
			Reference: entity.MovementRefInitial,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			fmt.Fprintf(os.Stderr, "movimiento inicial %s: %v\n", d.sku, err)
			os.Exit(1)
		}
		fmt.Printf("producto creado: %s (%s, stock %d)\n", d.name, d.sku, d.quantity)
	}

	fmt.Println("seed completado")
}
