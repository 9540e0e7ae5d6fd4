package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/phoenixdev100/Sales-Suite/internal/application/analytics"
	"github.com/phoenixdev100/Sales-Suite/internal/application/auth"
	"github.com/phoenixdev100/Sales-Suite/internal/application/sales"
	"github.com/phoenixdev100/Sales-Suite/internal/application/usecase"
	"github.com/phoenixdev100/Sales-Suite/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	UserUC      *usecase.UserUseCase
	StockUC     *usecase.StockUseCase
	SaleUC      *sales.SaleUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Política de roles: crear ventas puede cualquier usuario autenticado;
// mutaciones de catálogo y cambios de estado de venta ADMIN|MANAGER;
// administración de usuarios ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	manager := RequireRole(entity.RoleAdmin, entity.RoleManager)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (login y registro públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/alerts/low-stock", productHandler.LowStockAlerts)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Put("/:id", manager, categoryHandler.Update)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/stats/overview", saleHandler.Stats)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Patch("/:id/status", manager, saleHandler.UpdateStatus)

	// Stock ledger (auditoría)
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock-movements", stockHandler.List)

	// Users (administración)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", admin, userHandler.List)
	users.Get("/stats/overview", manager, userHandler.Stats)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/password", userHandler.ChangePassword)
	users.Patch("/:id/activate", admin, userHandler.Activate)
	users.Patch("/:id/deactivate", admin, userHandler.Deactivate)
	users.Delete("/:id", admin, userHandler.Delete)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/overview", dashboardHandler.Overview)
	protected.Get("/dashboard/analytics/sales", dashboardHandler.SalesAnalytics)
	protected.Get("/dashboard/analytics/inventory", dashboardHandler.InventoryAnalytics)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", manager)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/profit", reportHandler.Profit)
}
