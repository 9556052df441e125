package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/application/stock"
	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterUC    *stock.RegisterProductUseCase
	MovementUC    *stock.PostMovementUseCase
	QueryUC       *stock.QueryUseCase
	ConsistencyUC *stock.ConsistencyUseCase
	ExportUC      *stock.ExportUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	RefreshUC     *appanalytics.RefreshUseCase
	Metrics       *metrics.Metrics // nil en tests: las rutas funcionan igual
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
	}

	api := app.Group("/api")

	// Libro de inventario
	stockHandler := NewStockHandler(deps.RegisterUC, deps.MovementUC, deps.QueryUC, deps.ConsistencyUC, deps.ExportUC)
	products := api.Group("/products")
	products.Post("/", stockHandler.RegisterProduct)
	products.Get("/", stockHandler.ListProducts)
	products.Get("/export", stockHandler.ExportCatalog)

	api.Post("/movements", stockHandler.PostMovement)
	api.Get("/movements", stockHandler.ListMovements)
	api.Get("/balances/:sku", stockHandler.GetBalance)
	api.Get("/ledger/consistency", stockHandler.CheckConsistency)

	// Esquema estrella y pipeline
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.RefreshUC)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Get("/stock", analyticsHandler.GetStockAnalytics)
	analyticsGroup.Get("/sales", analyticsHandler.GetSalesAnalytics)
	analyticsGroup.Post("/refresh", analyticsHandler.TriggerRefresh)
	analyticsGroup.Get("/refresh/latest", analyticsHandler.GetLatestRun)
}
