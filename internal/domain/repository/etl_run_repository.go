package repository

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
)

// ETLRunRepository define el puerto de persistencia para el historial de corridas ETL.
type ETLRunRepository interface {
	// Start inserta la corrida con estado running.
	Start(ctx context.Context, run *entity.ETLRun) error
	// Finish actualiza estado, contadores y fecha de término de la corrida.
	Finish(ctx context.Context, run *entity.ETLRun) error
	// Latest devuelve la corrida más reciente o (nil, nil) si no hay ninguna.
	Latest(ctx context.Context) (*entity.ETLRun, error)
}
