// Package scheduler programa la corrida periódica del pipeline analítico.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/pkg/logger"
)

// Scheduler dispara el refresh analítico a intervalo fijo.
type Scheduler struct {
	sched     *cron.Cron
	refreshUC *analytics.RefreshUseCase
	log       *logger.Logger
}

func New(refreshUC *analytics.RefreshUseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		sched:     cron.New(),
		refreshUC: refreshUC,
		log:       log,
	}
}

// Start programa el refresh cada `minutes` minutos y arranca el cron.
func (s *Scheduler) Start(minutes int) error {
	spec := fmt.Sprintf("@every %dm", minutes)
	if _, err := s.sched.AddFunc(spec, s.runRefresh); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	s.sched.Start()
	s.log.Info().Str("schedule", spec).Msg("refresh analítico programado")
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	<-s.sched.Stop().Done()
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	run, err := s.refreshUC.Run(ctx)
	if errors.Is(err, domain.ErrRefreshInProgress) {
		// Alguien lo disparó a mano justo antes; la próxima pasada lo retoma.
		s.log.Warn().Msg("refresh omitido: corrida en curso")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("refresh analítico falló")
		return
	}
	s.log.Info().
		Str("run_id", run.ID).
		Int("source_rows", run.SourceRows).
		Int("sales_rows", run.SalesRows).
		Int("stock_rows", run.StockRows).
		Msg("refresh analítico completado")
}
