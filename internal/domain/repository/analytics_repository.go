package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockIndicatorResult fila cruda de indicadores de stock del esquema analítico.
// La produce la DB; el use case le añade la recomendación y la convierte en DTO.
type StockIndicatorResult struct {
	SKUID           string
	ProductName     string
	StockLevel      int64
	MonthlyTurnover float64
	StockoutRisk    float64
}

// TopProductResult fila cruda del ranking de productos por ingresos.
type TopProductResult struct {
	SKUID        string
	ProductName  string
	TotalRevenue decimal.Decimal
	UnitsSold    int64
}

// CarrierPerformanceResult desempeño agregado de una transportadora.
type CarrierPerformanceResult struct {
	CarrierID       string
	CarrierName     string
	AvgShippingCost decimal.Decimal
	OnTimeRate      float64 // proporción de entregas a tiempo, 0..1
}

// SupplierQualityResult calidad agregada de un proveedor.
type SupplierQualityResult struct {
	SupplierID    string
	SupplierName  string
	Location      string
	AvgDefectRate float64 // tasa media de defectos, 0..1
}

// StockKPIResult promedios globales de los indicadores de stock.
type StockKPIResult struct {
	AvgStockoutRisk    float64
	AvgMonthlyTurnover float64
}

// AnalyticsRepository define las consultas de lectura sobre el esquema estrella.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetStockIndicators devuelve hasta limit filas de fact_stock_analytics
	// junto con el nombre de producto, ordenadas por riesgo de quiebre descendente.
	GetStockIndicators(ctx context.Context, limit int) ([]StockIndicatorResult, error)

	// GetStockKPIs devuelve los promedios globales de riesgo y rotación
	// sobre toda la tabla de hechos (no solo las filas listadas).
	GetStockKPIs(ctx context.Context) (StockKPIResult, error)

	// GetTopProducts devuelve los limit productos con mayor ingreso acumulado.
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetCarrierPerformance agrega costo medio de envío y puntualidad por
	// transportadora, ordenado por puntualidad descendente.
	GetCarrierPerformance(ctx context.Context) ([]CarrierPerformanceResult, error)

	// GetSupplierQuality agrega la tasa media de defectos por proveedor,
	// ordenado de mejor a peor.
	GetSupplierQuality(ctx context.Context) ([]SupplierQualityResult, error)
}
