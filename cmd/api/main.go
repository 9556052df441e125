package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/sige-scm/sige-backend/docs"
	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/application/stock"
	"github.com/sige-scm/sige-backend/internal/infrastructure/csvsource"
	"github.com/sige-scm/sige-backend/internal/infrastructure/excel"
	"github.com/sige-scm/sige-backend/internal/infrastructure/postgres"
	"github.com/sige-scm/sige-backend/internal/infrastructure/scheduler"
	httpRouter "github.com/sige-scm/sige-backend/internal/interfaces/http"
	"github.com/sige-scm/sige-backend/pkg/config"
	"github.com/sige-scm/sige-backend/pkg/logger"
	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// @title        SIGE SCM API
// @version      1.0
// @description  Libro de inventario transaccional y analítica de la cadena de suministro.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("migraciones del esquema transaccional")
	}

	m := metrics.New()

	// Libro de inventario: repos sueltos para lecturas, TxRunner para escrituras.
	txRunner := postgres.NewTxRunner(pool)
	productRepo := postgres.NewProductRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	registerUC := stock.NewRegisterProductUseCase(txRunner, m)
	movementUC := stock.NewPostMovementUseCase(txRunner, productRepo, m)
	queryUC := stock.NewQueryUseCase(productRepo, balanceRepo, movementRepo)
	consistencyUC := stock.NewConsistencyUseCase(ledgerRepo)
	exportUC := stock.NewExportUseCase(productRepo, excel.NewCatalogExporter())

	// Pipeline analítico y tablero sobre el esquema estrella.
	etlRunRepo := postgres.NewETLRunRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	olapStore := postgres.NewOLAPStore(pool)
	csvReader := csvsource.NewReader(cfg.ETL.CSVPath)
	refreshUC := appanalytics.NewRefreshUseCase(csvReader, olapStore, etlRunRepo, m)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Refresh programado: disparador externo al libro, una corrida a la vez.
	var sched *scheduler.Scheduler
	if cfg.ETL.Enabled {
		sched = scheduler.New(refreshUC, log)
		if err := sched.Start(cfg.ETL.RefreshMinutes); err != nil {
			log.Fatal().Err(err).Msg("programar refresh analítico")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIGE SCM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterUC:    registerUC,
		MovementUC:    movementUC,
		QueryUC:       queryUC,
		ConsistencyUC: consistencyUC,
		ExportUC:      exportUC,
		DashboardUC:   dashboardUC,
		RefreshUC:     refreshUC,
		Metrics:       m,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Primero el cron: si hay una corrida en vuelo, esperar a que termine.
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
