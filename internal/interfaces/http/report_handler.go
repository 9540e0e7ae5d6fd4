package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/phoenixdev100/Sales-Suite/internal/application/analytics"
	"github.com/phoenixdev100/Sales-Suite/internal/application/dto"
	"github.com/phoenixdev100/Sales-Suite/internal/domain"
)

// ReportHandler reportes de ventas e inventario en JSON (protegido).
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Reporte de ventas por rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dateFrom  query  string  false  "YYYY-MM-DD (por defecto: hace 30 días)"
// @Param        dateTo    query  string  false  "YYYY-MM-DD (por defecto: hoy)"
// @Param        groupBy   query  string  false  "day|week|month"  default(day)
// @Success      200       {object}  dto.SalesReportResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.SalesReport(c.Context(), c.Query("dateFrom"), c.Query("dateTo"), c.Query("groupBy"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Profit godoc
// @Summary      Reporte de rentabilidad por rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dateFrom  query  string  false  "YYYY-MM-DD (por defecto: hace 30 días)"
// @Param        dateTo    query  string  false  "YYYY-MM-DD (por defecto: hoy)"
// @Success      200       {object}  dto.ProfitReportResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	out, err := h.uc.ProfitReport(c.Context(), c.Query("dateFrom"), c.Query("dateTo"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario valorizado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        lowStock  query  bool  false  "Solo productos en alerta"
// @Success      200       {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context(), c.QueryBool("lowStock", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
