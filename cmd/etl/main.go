package main

import (
	"context"
	"os"
	"time"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/infrastructure/csvsource"
	"github.com/sige-scm/sige-backend/internal/infrastructure/postgres"
	"github.com/sige-scm/sige-backend/pkg/config"
	"github.com/sige-scm/sige-backend/pkg/logger"
)

// Corrida manual del pipeline analítico: recrear el esquema estrella, extraer
// el CSV fuente, transformar y cargar. Sale con código distinto de cero si
// cualquier paso falla; el detalle queda también en etl_runs.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "etl",
	})
	log.Info().Str("csv", cfg.ETL.CSVPath).Msg("iniciando refresh analítico manual")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Asegura etl_runs aunque la API nunca haya corrido contra esta base.
	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("migraciones del esquema transaccional")
	}

	refreshUC := appanalytics.NewRefreshUseCase(
		csvsource.NewReader(cfg.ETL.CSVPath),
		postgres.NewOLAPStore(pool),
		postgres.NewETLRunRepository(pool),
		nil, // sin métricas: proceso efímero, no expone /metrics
	)

	run, err := refreshUC.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh analítico falló")
		pool.Close()
		os.Exit(1)
	}

	log.Info().
		Str("run_id", run.ID).
		Int("source_rows", run.SourceRows).
		Int("sales_rows", run.SalesRows).
		Int("stock_rows", run.StockRows).
		Msg("refresh analítico completado")
}
