package repository

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (append-only).
type MovementRepository interface {
	// Append inserta el movimiento y asigna movement.ID con el serial de la DB
	// (estrictamente creciente). Nunca hay update ni delete.
	Append(ctx context.Context, movement *entity.Movement) error
	// ListBySKU devuelve el historial de un SKU, más reciente primero.
	ListBySKU(ctx context.Context, sku string, limit, offset int) ([]*entity.Movement, error)
}
