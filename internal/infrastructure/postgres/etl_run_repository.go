package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.ETLRunRepository = (*ETLRunRepo)(nil)

// ETLRunRepo bitácora de corridas del pipeline en PostgreSQL.
type ETLRunRepo struct {
	q Querier
}

func NewETLRunRepository(q Querier) *ETLRunRepo {
	return &ETLRunRepo{q: q}
}

// Start registra la corrida apenas arranca, con estado running.
func (r *ETLRunRepo) Start(ctx context.Context, run *entity.ETLRun) error {
	query := `
		INSERT INTO etl_runs (id, started_at, status, source_rows, sales_rows, stock_rows, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.StartedAt, run.Status, run.SourceRows, run.SalesRows, run.StockRows, run.Detail)
	if err != nil {
		return fmt.Errorf("insert etl run: %w", err)
	}
	return nil
}

// Finish cierra la corrida con su estado final y los conteos de filas.
func (r *ETLRunRepo) Finish(ctx context.Context, run *entity.ETLRun) error {
	query := `
		UPDATE etl_runs
		SET finished_at = $2, status = $3, source_rows = $4, sales_rows = $5, stock_rows = $6, detail = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.FinishedAt, run.Status, run.SourceRows, run.SalesRows, run.StockRows, run.Detail)
	if err != nil {
		return fmt.Errorf("update etl run: %w", err)
	}
	return nil
}

// Latest devuelve la corrida más reciente, o nil si nunca se ejecutó el pipeline.
func (r *ETLRunRepo) Latest(ctx context.Context) (*entity.ETLRun, error) {
	query := `
		SELECT id, started_at, finished_at, status, source_rows, sales_rows, stock_rows, detail
		FROM etl_runs
		ORDER BY started_at DESC
		LIMIT 1`
	var run entity.ETLRun
	err := r.q.QueryRow(ctx, query).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status,
		&run.SourceRows, &run.SalesRows, &run.StockRows, &run.Detail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest etl run: %w", err)
	}
	return &run, nil
}
