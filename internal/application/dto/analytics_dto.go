package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Indicadores de stock ──────────────────────────────────────────────────────

// StockIndicatorDTO una fila de fact_stock_analytics con su recomendación.
type StockIndicatorDTO struct {
	SKUID           string  `json:"sku_id"`
	ProductName     string  `json:"product_name"`
	StockLevel      int64   `json:"stock_level"`
	MonthlyTurnover float64 `json:"monthly_turnover"`
	StockoutRisk    float64 `json:"stockout_risk"`
	Recommendation  string  `json:"recommendation"`
}

// StockKPIsDTO promedios globales del tablero de stock.
type StockKPIsDTO struct {
	AvgStockoutRisk    float64 `json:"avg_stockout_risk"`
	AvgMonthlyTurnover float64 `json:"avg_monthly_turnover"`
}

// StockAnalyticsResponse respuesta de GET /api/analytics/stock.
type StockAnalyticsResponse struct {
	Items []StockIndicatorDTO `json:"items"`
	KPIs  StockKPIsDTO        `json:"kpis"`
}

// ── Ventas, logística y proveedores ───────────────────────────────────────────

// TopProductDTO un producto del ranking de ingresos con su nota de análisis.
type TopProductDTO struct {
	SKUID        string          `json:"sku_id"`
	ProductName  string          `json:"product_name"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	UnitsSold    int64           `json:"units_sold"`
	Highlight    string          `json:"highlight"`
}

// CarrierPerformanceDTO desempeño de una transportadora con la decisión sugerida.
type CarrierPerformanceDTO struct {
	CarrierID       string          `json:"carrier_id"`
	CarrierName     string          `json:"carrier_name"`
	AvgShippingCost decimal.Decimal `json:"avg_shipping_cost"`
	OnTimeRate      float64         `json:"on_time_rate"`
	Decision        string          `json:"decision"`
}

// SupplierQualityDTO calidad de un proveedor con la acción sugerida.
type SupplierQualityDTO struct {
	SupplierID      string  `json:"supplier_id"`
	SupplierName    string  `json:"supplier_name"`
	Location        string  `json:"location"`
	AvgDefectRate   float64 `json:"avg_defect_rate"`
	SuggestedAction string  `json:"suggested_action"`
}

// SalesAnalyticsResponse respuesta de GET /api/analytics/sales.
type SalesAnalyticsResponse struct {
	TopProducts []TopProductDTO         `json:"top_products"`
	Carriers    []CarrierPerformanceDTO `json:"carriers"`
	Suppliers   []SupplierQualityDTO    `json:"suppliers"`
}

// ── Corridas ETL ──────────────────────────────────────────────────────────────

// RefreshRunResponse resumen de una corrida del pipeline analítico.
type RefreshRunResponse struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Status     string     `json:"status"`
	SourceRows int        `json:"source_rows"`
	SalesRows  int        `json:"sales_rows"`
	StockRows  int        `json:"stock_rows"`
	Detail     string     `json:"detail,omitempty"`
}
