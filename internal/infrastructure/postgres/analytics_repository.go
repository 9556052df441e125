package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el esquema estrella `olap`.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetStockIndicators devuelve hasta `limit` filas del hecho de stock con su
// producto, las de mayor riesgo de quiebre primero. El SKU desempata para que
// el orden sea estable entre corridas.
func (r *AnalyticsRepo) GetStockIndicators(ctx context.Context, limit int) ([]repository.StockIndicatorResult, error) {
	const query = `
	SELECT
	    f.sku_id,
	    p.product_name,
	    f.stock_level,
	    f.monthly_turnover,
	    f.stockout_risk
	FROM olap.fact_stock_analytics f
	JOIN olap.dim_product p ON p.sku_id = f.sku_id
	ORDER BY f.stockout_risk DESC, f.sku_id
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockIndicators: %w", err)
	}
	defer rows.Close()

	var results []repository.StockIndicatorResult
	for rows.Next() {
		var row repository.StockIndicatorResult
		if err := rows.Scan(
			&row.SKUID,
			&row.ProductName,
			&row.StockLevel,
			&row.MonthlyTurnover,
			&row.StockoutRisk,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetStockIndicators scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetStockKPIs promedia riesgo y rotación sobre toda la tabla de hechos.
// Usa COALESCE para devolver cero si el pipeline aún no cargó nada.
func (r *AnalyticsRepo) GetStockKPIs(ctx context.Context) (repository.StockKPIResult, error) {
	const query = `
	SELECT
	    COALESCE(AVG(stockout_risk),    0) AS avg_stockout_risk,
	    COALESCE(AVG(monthly_turnover), 0) AS avg_monthly_turnover
	FROM olap.fact_stock_analytics`

	var kpis repository.StockKPIResult
	err := r.pool.QueryRow(ctx, query).
		Scan(&kpis.AvgStockoutRisk, &kpis.AvgMonthlyTurnover)
	if err != nil {
		return repository.StockKPIResult{}, fmt.Errorf("analytics.GetStockKPIs: %w", err)
	}
	return kpis, nil
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso acumulado
// en el hecho de ventas.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    f.sku_id,
	    p.product_name,
	    SUM(f.total_revenue)      AS total_revenue,
	    SUM(f.units_sold)::BIGINT AS units_sold
	FROM olap.fact_sales_logistics f
	JOIN olap.dim_product p ON p.sku_id = f.sku_id
	GROUP BY f.sku_id, p.product_name
	ORDER BY total_revenue DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.SKUID,
			&row.ProductName,
			&row.TotalRevenue,
			&row.UnitsSold,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts rows: %w", err)
	}
	if results == nil {
		results = []repository.TopProductResult{}
	}
	return results, nil
}

// GetCarrierPerformance agrega costo medio de envío y proporción de entregas
// a tiempo por transportadora, la más puntual primero.
func (r *AnalyticsRepo) GetCarrierPerformance(ctx context.Context) ([]repository.CarrierPerformanceResult, error) {
	const query = `
	SELECT
	    f.carrier_id,
	    c.carrier_name,
	    AVG(f.shipping_cost)                                        AS avg_shipping_cost,
	    AVG(CASE WHEN f.on_time_flag THEN 1.0 ELSE 0.0 END)::float8 AS on_time_rate
	FROM olap.fact_sales_logistics f
	JOIN olap.dim_carrier c ON c.carrier_id = f.carrier_id
	GROUP BY f.carrier_id, c.carrier_name
	ORDER BY on_time_rate DESC, f.carrier_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCarrierPerformance: %w", err)
	}
	defer rows.Close()

	var results []repository.CarrierPerformanceResult
	for rows.Next() {
		var row repository.CarrierPerformanceResult
		if err := rows.Scan(
			&row.CarrierID,
			&row.CarrierName,
			&row.AvgShippingCost,
			&row.OnTimeRate,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetCarrierPerformance scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSupplierQuality agrega la tasa media de defectos por proveedor, del mejor
// al peor. La ubicación viene de la dimensión para mostrarla tal cual.
func (r *AnalyticsRepo) GetSupplierQuality(ctx context.Context) ([]repository.SupplierQualityResult, error) {
	const query = `
	SELECT
	    f.supplier_id,
	    s.supplier_name,
	    s.location,
	    AVG(f.defect_rate)::float8 AS avg_defect_rate
	FROM olap.fact_sales_logistics f
	JOIN olap.dim_supplier s ON s.supplier_id = f.supplier_id
	GROUP BY f.supplier_id, s.supplier_name, s.location
	ORDER BY avg_defect_rate ASC, f.supplier_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSupplierQuality: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierQualityResult
	for rows.Next() {
		var row repository.SupplierQualityResult
		if err := rows.Scan(
			&row.SupplierID,
			&row.SupplierName,
			&row.Location,
			&row.AvgDefectRate,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetSupplierQuality scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
