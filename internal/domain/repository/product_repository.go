package repository

import (
	"context"
	"time"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
)

// ProductWithBalance fila del listado de catálogo: ficha maestra + saldo actual.
// La produce la DB (join products × stock_balances); el use case la convierte en DTO.
type ProductWithBalance struct {
	Product          entity.Product
	Balance          int64
	BalanceUpdatedAt time.Time
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste la ficha del producto. SKU duplicado → domain.ErrDuplicate.
	Create(ctx context.Context, product *entity.Product) error
	// GetBySKU devuelve el producto o (nil, nil) si no existe.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// ListWithBalances devuelve el catálogo completo con su saldo, ordenado por SKU.
	ListWithBalances(ctx context.Context) ([]ProductWithBalance, error)
}
