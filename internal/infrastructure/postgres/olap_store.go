package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/domain/analytics"
)

var _ appanalytics.OLAPStore = (*OLAPStore)(nil)

// olapDDL reconstruye el esquema estrella desde cero. Los DROP van de hechos a
// dimensiones para respetar las claves foráneas.
var olapDDL = []string{
	`CREATE SCHEMA IF NOT EXISTS olap`,
	`DROP TABLE IF EXISTS olap.fact_stock_analytics`,
	`DROP TABLE IF EXISTS olap.fact_sales_logistics`,
	`DROP TABLE IF EXISTS olap.dim_date`,
	`DROP TABLE IF EXISTS olap.dim_carrier`,
	`DROP TABLE IF EXISTS olap.dim_supplier`,
	`DROP TABLE IF EXISTS olap.dim_product`,
	`CREATE TABLE olap.dim_product (
		sku_id             TEXT PRIMARY KEY,
		product_name       TEXT NOT NULL,
		category           TEXT NOT NULL,
		manufacturing_cost NUMERIC(12,2) NOT NULL,
		unit_price         NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE olap.dim_supplier (
		supplier_id   TEXT PRIMARY KEY,
		supplier_name TEXT NOT NULL,
		location      TEXT NOT NULL
	)`,
	`CREATE TABLE olap.dim_carrier (
		carrier_id     TEXT PRIMARY KEY,
		carrier_name   TEXT NOT NULL,
		transport_mode TEXT NOT NULL
	)`,
	`CREATE TABLE olap.dim_date (
		date_id DATE PRIMARY KEY,
		year    INT NOT NULL,
		month   INT NOT NULL,
		day     INT NOT NULL
	)`,
	`CREATE TABLE olap.fact_sales_logistics (
		id            SERIAL PRIMARY KEY,
		date_id       DATE   NOT NULL REFERENCES olap.dim_date (date_id),
		sku_id        TEXT   NOT NULL REFERENCES olap.dim_product (sku_id),
		supplier_id   TEXT   NOT NULL REFERENCES olap.dim_supplier (supplier_id),
		carrier_id    TEXT   NOT NULL REFERENCES olap.dim_carrier (carrier_id),
		total_revenue NUMERIC(14,2) NOT NULL,
		total_cost    NUMERIC(14,2) NOT NULL,
		gross_margin  NUMERIC(14,2) NOT NULL,
		units_sold    BIGINT  NOT NULL,
		shipping_cost NUMERIC(12,2) NOT NULL,
		on_time_flag  BOOLEAN NOT NULL,
		defect_rate   DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE olap.fact_stock_analytics (
		id               SERIAL PRIMARY KEY,
		date_id          DATE NOT NULL REFERENCES olap.dim_date (date_id),
		sku_id           TEXT NOT NULL REFERENCES olap.dim_product (sku_id),
		stock_level      BIGINT NOT NULL,
		monthly_turnover DOUBLE PRECISION NOT NULL,
		stockout_risk    DOUBLE PRECISION NOT NULL
	)`,
}

// OLAPStore materializa el esquema estrella en PostgreSQL.
type OLAPStore struct {
	pool *pgxpool.Pool
}

func NewOLAPStore(pool *pgxpool.Pool) *OLAPStore {
	return &OLAPStore{pool: pool}
}

// RecreateSchema dropea y vuelve a crear las seis tablas en una transacción,
// para que ningún lector vea el esquema a medio construir.
func (s *OLAPStore) RecreateSchema(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin recreate olap: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range olapDDL {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("recreate olap schema: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit recreate olap: %w", err)
	}
	return nil
}

// LoadStar trunca el esquema completo y lo recarga en una sola transacción:
// dimensiones con INSERT (son pocas filas), hechos con COPY.
func (s *OLAPStore) LoadStar(ctx context.Context, star analytics.StarSchema) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin load olap: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		TRUNCATE olap.fact_stock_analytics, olap.fact_sales_logistics,
		         olap.dim_date, olap.dim_carrier, olap.dim_supplier, olap.dim_product
		RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate olap: %w", err)
	}

	if err := loadDimensions(ctx, tx, star); err != nil {
		return err
	}
	if err := loadFacts(ctx, tx, star); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit load olap: %w", err)
	}
	return nil
}

func loadDimensions(ctx context.Context, tx pgx.Tx, star analytics.StarSchema) error {
	for _, p := range star.Products {
		_, err := tx.Exec(ctx, `
			INSERT INTO olap.dim_product (sku_id, product_name, category, manufacturing_cost, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			p.SKUID, p.ProductName, p.Category, p.ManufacturingCost, p.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert dim_product %s: %w", p.SKUID, err)
		}
	}
	for _, sup := range star.Suppliers {
		_, err := tx.Exec(ctx, `
			INSERT INTO olap.dim_supplier (supplier_id, supplier_name, location)
			VALUES ($1, $2, $3)`,
			sup.SupplierID, sup.SupplierName, sup.Location)
		if err != nil {
			return fmt.Errorf("insert dim_supplier %s: %w", sup.SupplierID, err)
		}
	}
	for _, c := range star.Carriers {
		_, err := tx.Exec(ctx, `
			INSERT INTO olap.dim_carrier (carrier_id, carrier_name, transport_mode)
			VALUES ($1, $2, $3)`,
			c.CarrierID, c.CarrierName, c.TransportMode)
		if err != nil {
			return fmt.Errorf("insert dim_carrier %s: %w", c.CarrierID, err)
		}
	}
	for _, d := range star.Dates {
		_, err := tx.Exec(ctx, `
			INSERT INTO olap.dim_date (date_id, year, month, day)
			VALUES ($1, $2, $3, $4)`,
			d.DateID, d.Year, d.Month, d.Day)
		if err != nil {
			return fmt.Errorf("insert dim_date %s: %w", d.DateID.Format("2006-01-02"), err)
		}
	}
	return nil
}

func loadFacts(ctx context.Context, tx pgx.Tx, star analytics.StarSchema) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"olap", "fact_sales_logistics"},
		[]string{
			"date_id", "sku_id", "supplier_id", "carrier_id",
			"total_revenue", "total_cost", "gross_margin", "units_sold",
			"shipping_cost", "on_time_flag", "defect_rate",
		},
		pgx.CopyFromSlice(len(star.Sales), func(i int) ([]any, error) {
			f := star.Sales[i]
			return []any{
				f.DateID, f.SKUID, f.SupplierID, f.CarrierID,
				f.TotalRevenue, f.TotalCost, f.GrossMargin, f.UnitsSold,
				f.ShippingCost, f.OnTime, f.DefectRate,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy fact_sales_logistics: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"olap", "fact_stock_analytics"},
		[]string{"date_id", "sku_id", "stock_level", "monthly_turnover", "stockout_risk"},
		pgx.CopyFromSlice(len(star.Stock), func(i int) ([]any, error) {
			f := star.Stock[i]
			return []any{f.DateID, f.SKUID, f.StockLevel, f.MonthlyTurnover, f.StockoutRisk}, nil
		}))
	if err != nil {
		return fmt.Errorf("copy fact_stock_analytics: %w", err)
	}
	return nil
}
