package postgres

import (
	"context"
	"fmt"

	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: este adaptador no expone update ni delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento y deja en movement.ID el secuencial asignado por la DB.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (sku, direction, quantity, moved_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		movement.SKU, movement.Direction, movement.Quantity, movement.MovedAt,
	).Scan(&movement.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert movement: sku %s: %w", movement.SKU, domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListBySKU devuelve el historial del SKU, más reciente primero.
func (r *MovementRepo) ListBySKU(ctx context.Context, sku string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, sku, direction, quantity, moved_at
		FROM stock_movements WHERE sku = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, sku, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.SKU, &m.Direction, &m.Quantity, &m.MovedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
