package repository

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
)

// BalanceRepository define el puerto para el saldo materializado por SKU.
// Las escrituras se usan dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// Get devuelve el saldo o (nil, nil) si no existe fila para el SKU.
	Get(ctx context.Context, sku string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve, o (nil, nil)
	// si no existe. Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, sku string) (*entity.Balance, error)
	// Create inserta la fila de saldo (alta de producto, cantidad cero).
	Create(ctx context.Context, balance *entity.Balance) error
	// Update reescribe cantidad y fecha de la fila ya bloqueada.
	Update(ctx context.Context, balance *entity.Balance) error
}
