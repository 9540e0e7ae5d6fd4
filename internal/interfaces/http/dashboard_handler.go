package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/phoenixdev100/Sales-Suite/internal/application/analytics"
	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview devuelve el resumen general: ventas del día/mes/año, conteos de
// catálogo y usuarios, ventas recientes, top productos y tendencia diaria.
// GET /api/dashboard/overview
//
// No requiere parámetros; las ventanas de tiempo se calculan en el servidor.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
	return c.JSON(out)
}

// SalesAnalytics godoc
// @Summary      Analítica de ventas del período
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  int  false  "Días de la ventana"  default(30)
// @Success      200     {object}  dto.SalesAnalyticsResponse
// @Router       /api/dashboard/analytics/sales [get]
func (h *DashboardHandler) SalesAnalytics(c *fiber.Ctx) error {
	out, err := h.uc.SalesAnalytics(c.Context(), c.QueryInt("period", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
	return c.JSON(out)
}

// InventoryAnalytics godoc
// @Summary      Analítica de inventario activo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryAnalyticsResponse
// @Router       /api/dashboard/analytics/inventory [get]
func (h *DashboardHandler) InventoryAnalytics(c *fiber.Ctx) error {
	out, err := h.uc.InventoryAnalytics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
	return c.JSON(out)
}
