package analytics

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/analytics"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// RefreshUseCase reconstruye el esquema estrella completo desde el dataset
// fuente: recrear tablas, extraer, transformar, cargar y registrar la corrida.
// Es el único punto de entrada del pipeline; el scheduler, el endpoint HTTP y
// el binario cmd/etl lo invocan por igual.
type RefreshUseCase struct {
	source  SourceReader
	olap    OLAPStore
	runRepo repository.ETLRunRepository
	metrics *metrics.Metrics

	// busy garantiza una sola corrida a la vez en el proceso.
	busy atomic.Bool
}

// NewRefreshUseCase construye el caso de uso.
func NewRefreshUseCase(
	source SourceReader,
	olap OLAPStore,
	runRepo repository.ETLRunRepository,
	m *metrics.Metrics,
) *RefreshUseCase {
	return &RefreshUseCase{
		source:  source,
		olap:    olap,
		runRepo: runRepo,
		metrics: m,
	}
}

// Run ejecuta el full refresh de punta a punta y devuelve el resumen de la
// corrida. Si ya hay una corrida en curso devuelve domain.ErrRefreshInProgress
// sin tocar nada. Cualquier fallo intermedio queda registrado en etl_runs con
// estado error y el detalle del paso que falló.
func (uc *RefreshUseCase) Run(ctx context.Context) (*entity.ETLRun, error) {
	if !uc.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrRefreshInProgress
	}
	defer uc.busy.Store(false)

	started := time.Now()
	run := &entity.ETLRun{
		ID:        uuid.New().String(),
		StartedAt: started,
		Status:    entity.ETLRunStatusRunning,
	}
	if err := uc.runRepo.Start(ctx, run); err != nil {
		return nil, fmt.Errorf("refresh: registrar corrida: %w", err)
	}

	star, sourceRows, execErr := uc.execute(ctx)
	finished := time.Now()
	run.FinishedAt = &finished

	if execErr != nil {
		run.Status = entity.ETLRunStatusError
		run.Detail = execErr.Error()
		// Cerrar la corrida es best effort: el error de pipeline manda.
		_ = uc.runRepo.Finish(ctx, run)
		if uc.metrics != nil {
			uc.metrics.RefreshRuns.WithLabelValues(entity.ETLRunStatusError).Inc()
		}
		return nil, execErr
	}

	run.Status = entity.ETLRunStatusOK
	run.SourceRows = sourceRows
	run.SalesRows = len(star.Sales)
	run.StockRows = len(star.Stock)
	if err := uc.runRepo.Finish(ctx, run); err != nil {
		return nil, fmt.Errorf("refresh: cerrar corrida: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.RefreshRuns.WithLabelValues(entity.ETLRunStatusOK).Inc()
		uc.metrics.RefreshDuration.Observe(finished.Sub(started).Seconds())
	}
	return run, nil
}

// execute corre los cuatro pasos del pipeline en orden.
func (uc *RefreshUseCase) execute(ctx context.Context) (analytics.StarSchema, int, error) {
	// 1. Recrear el esquema estrella
	if err := uc.olap.RecreateSchema(ctx); err != nil {
		return analytics.StarSchema{}, 0, fmt.Errorf("refresh: recrear esquema: %w", err)
	}

	// 2. Extraer el dataset fuente
	records, err := uc.source.Read(ctx)
	if err != nil {
		return analytics.StarSchema{}, 0, fmt.Errorf("refresh: extraer dataset: %w", err)
	}

	// 3. Transformar al modelo dimensional
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	star := analytics.Transform(records, time.Now(), rng)

	// 4. Cargar dimensiones y hechos
	if err := uc.olap.LoadStar(ctx, star); err != nil {
		return analytics.StarSchema{}, 0, fmt.Errorf("refresh: cargar esquema: %w", err)
	}

	return star, len(records), nil
}

// Latest devuelve la última corrida registrada, o (nil, nil) si nunca corrió.
func (uc *RefreshUseCase) Latest(ctx context.Context) (*entity.ETLRun, error) {
	return uc.runRepo.Latest(ctx)
}
