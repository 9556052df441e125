// Package analytics contiene los casos de uso del pipeline de refresh y del
// tablero de indicadores sobre el esquema estrella.
package analytics

import (
	"context"
	"fmt"

	"github.com/sige-scm/sige-backend/internal/application/dto"
	"github.com/sige-scm/sige-backend/internal/domain/analytics"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

const (
	dashboardStockRows   = 200 // filas de indicadores de stock en el tablero
	dashboardTopProducts = 10  // productos en el ranking de ingresos
)

// DashboardUseCase sirve los indicadores analíticos: stock con recomendaciones
// y el panel de ventas/logística/proveedores con las decisiones sugeridas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only sobre olap.*).
// Las reglas de decisión viven en internal/domain/analytics; acá solo se
// agregan los umbrales de flota/mercado que dependen del conjunto completo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStockAnalytics construye el tablero de stock: indicadores por SKU con su
// recomendación y los KPIs globales.
//
// Dos consultas en paralelo:
//  1. GetStockIndicators(200) → filas de fact_stock_analytics + nombre
//  2. GetStockKPIs            → promedios globales de riesgo y rotación
func (uc *DashboardUseCase) GetStockAnalytics(ctx context.Context) (*dto.StockAnalyticsResponse, error) {
	type indicatorsResult struct {
		rows []repository.StockIndicatorResult
		err  error
	}
	type kpisResult struct {
		kpis repository.StockKPIResult
		err  error
	}

	indicatorsCh := make(chan indicatorsResult, 1)
	kpisCh := make(chan kpisResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetStockIndicators(ctx, dashboardStockRows)
		indicatorsCh <- indicatorsResult{rows, err}
	}()
	go func() {
		kpis, err := uc.analyticsRepo.GetStockKPIs(ctx)
		kpisCh <- kpisResult{kpis, err}
	}()

	indicators := <-indicatorsCh
	kpis := <-kpisCh

	if indicators.err != nil {
		return nil, fmt.Errorf("tablero de stock: indicadores: %w", indicators.err)
	}
	if kpis.err != nil {
		return nil, fmt.Errorf("tablero de stock: kpis: %w", kpis.err)
	}

	items := make([]dto.StockIndicatorDTO, 0, len(indicators.rows))
	for _, row := range indicators.rows {
		items = append(items, dto.StockIndicatorDTO{
			SKUID:           row.SKUID,
			ProductName:     row.ProductName,
			StockLevel:      row.StockLevel,
			MonthlyTurnover: row.MonthlyTurnover,
			StockoutRisk:    row.StockoutRisk,
			Recommendation:  analytics.StockRecommendation(row.StockoutRisk),
		})
	}

	return &dto.StockAnalyticsResponse{
		Items: items,
		KPIs: dto.StockKPIsDTO{
			AvgStockoutRisk:    kpis.kpis.AvgStockoutRisk,
			AvgMonthlyTurnover: kpis.kpis.AvgMonthlyTurnover,
		},
	}, nil
}

// GetSalesAnalytics construye el panel de ventas: ranking de productos por
// ingreso, desempeño de transportadoras y calidad de proveedores.
//
// Tres consultas en paralelo:
//  1. GetTopProducts(10)     → ranking por ingreso acumulado
//  2. GetCarrierPerformance  → costo medio y puntualidad por transportadora
//  3. GetSupplierQuality     → tasa media de defectos por proveedor
func (uc *DashboardUseCase) GetSalesAnalytics(ctx context.Context) (*dto.SalesAnalyticsResponse, error) {
	type productsResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type carriersResult struct {
		rows []repository.CarrierPerformanceResult
		err  error
	}
	type suppliersResult struct {
		rows []repository.SupplierQualityResult
		err  error
	}

	productsCh := make(chan productsResult, 1)
	carriersCh := make(chan carriersResult, 1)
	suppliersCh := make(chan suppliersResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, dashboardTopProducts)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetCarrierPerformance(ctx)
		carriersCh <- carriersResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetSupplierQuality(ctx)
		suppliersCh <- suppliersResult{rows, err}
	}()

	products := <-productsCh
	carriers := <-carriersCh
	suppliers := <-suppliersCh

	if products.err != nil {
		return nil, fmt.Errorf("panel de ventas: top productos: %w", products.err)
	}
	if carriers.err != nil {
		return nil, fmt.Errorf("panel de ventas: transportadoras: %w", carriers.err)
	}
	if suppliers.err != nil {
		return nil, fmt.Errorf("panel de ventas: proveedores: %w", suppliers.err)
	}

	return &dto.SalesAnalyticsResponse{
		TopProducts: uc.buildTopProducts(products.rows),
		Carriers:    uc.buildCarriers(carriers.rows),
		Suppliers:   uc.buildSuppliers(suppliers.rows),
	}, nil
}

// buildTopProducts anota el ranking: el primero (mayor ingreso) es el producto
// estrella, el resto lleva la nota genérica de alto desempeño.
func (uc *DashboardUseCase) buildTopProducts(rows []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for i, row := range rows {
		out = append(out, dto.TopProductDTO{
			SKUID:        row.SKUID,
			ProductName:  row.ProductName,
			TotalRevenue: row.TotalRevenue.Round(2),
			UnitsSold:    row.UnitsSold,
			Highlight:    analytics.ProductHighlight(i == 0),
		})
	}
	return out
}

// buildCarriers calcula los umbrales de flota (costo medio y percentil 75) y
// aplica la regla de decisión a cada transportadora.
func (uc *DashboardUseCase) buildCarriers(rows []repository.CarrierPerformanceResult) []dto.CarrierPerformanceDTO {
	costs := make([]float64, len(rows))
	for i, row := range rows {
		costs[i] = row.AvgShippingCost.InexactFloat64()
	}
	fleetMean := analytics.Mean(costs)
	fleetP75 := analytics.Percentile(costs, 0.75)

	out := make([]dto.CarrierPerformanceDTO, 0, len(rows))
	for i, row := range rows {
		out = append(out, dto.CarrierPerformanceDTO{
			CarrierID:       row.CarrierID,
			CarrierName:     row.CarrierName,
			AvgShippingCost: row.AvgShippingCost.Round(2),
			OnTimeRate:      row.OnTimeRate,
			Decision:        analytics.CarrierDecision(row.OnTimeRate, costs[i], fleetMean, fleetP75),
		})
	}
	return out
}

// buildSuppliers localiza la mejor y la peor tasa del mercado y aplica la regla
// de acción sugerida a cada proveedor.
func (uc *DashboardUseCase) buildSuppliers(rows []repository.SupplierQualityResult) []dto.SupplierQualityDTO {
	if len(rows) == 0 {
		return []dto.SupplierQualityDTO{}
	}

	best, worst := rows[0].AvgDefectRate, rows[0].AvgDefectRate
	for _, row := range rows[1:] {
		if row.AvgDefectRate < best {
			best = row.AvgDefectRate
		}
		if row.AvgDefectRate > worst {
			worst = row.AvgDefectRate
		}
	}

	out := make([]dto.SupplierQualityDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SupplierQualityDTO{
			SupplierID:      row.SupplierID,
			SupplierName:    row.SupplierName,
			Location:        row.Location,
			AvgDefectRate:   row.AvgDefectRate,
			SuggestedAction: analytics.SupplierAction(row.AvgDefectRate, best, worst),
		})
	}
	return out
}
