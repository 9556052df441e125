package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/application/dto"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
)

// AnalyticsHandler maneja los endpoints del esquema estrella y del pipeline.
type AnalyticsHandler struct {
	dashboard *appanalytics.DashboardUseCase
	refresh   *appanalytics.RefreshUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(dashboard *appanalytics.DashboardUseCase, refresh *appanalytics.RefreshUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, refresh: refresh}
}

// GetStockAnalytics godoc
// @Summary      Indicadores analíticos de stock
// @Description  Filas de fact_stock_analytics con recomendación por riesgo de quiebre, más KPIs globales.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.StockAnalyticsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/stock [get]
func (h *AnalyticsHandler) GetStockAnalytics(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStockAnalytics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetSalesAnalytics godoc
// @Summary      Panel de ventas, logística y proveedores
// @Description  Top de productos por ingreso, desempeño por transportadora y calidad por proveedor.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.SalesAnalyticsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales [get]
func (h *AnalyticsHandler) GetSalesAnalytics(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSalesAnalytics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TriggerRefresh godoc
// @Summary      Disparar el refresh analítico
// @Description  Corre el pipeline completo: recrear esquema, extraer CSV, transformar y cargar. Una corrida a la vez.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.RefreshRunResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya hay una corrida en curso"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/refresh [post]
func (h *AnalyticsHandler) TriggerRefresh(c *fiber.Ctx) error {
	run, err := h.refresh.Run(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRefreshInProgress) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFRESH_IN_PROGRESS", Message: "ya hay una corrida en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(runToDTO(run))
}

// GetLatestRun godoc
// @Summary      Última corrida del pipeline
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.RefreshRunResponse
// @Failure      404  {object}  dto.ErrorResponse  "el pipeline nunca corrió"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/refresh/latest [get]
func (h *AnalyticsHandler) GetLatestRun(c *fiber.Ctx) error {
	run, err := h.refresh.Latest(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el pipeline nunca corrió"})
	}
	return c.JSON(runToDTO(run))
}

func runToDTO(run *entity.ETLRun) dto.RefreshRunResponse {
	return dto.RefreshRunResponse{
		ID:         run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Status:     run.Status,
		SourceRows: run.SourceRows,
		SalesRows:  run.SalesRows,
		StockRows:  run.StockRows,
		Detail:     run.Detail,
	}
}
