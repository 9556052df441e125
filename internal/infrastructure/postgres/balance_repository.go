package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual de un SKU, o (nil, nil) si no existe fila.
func (r *BalanceRepo) Get(ctx context.Context, sku string) (*entity.Balance, error) {
	query := `
		SELECT sku, quantity, updated_at
		FROM stock_balances WHERE sku = $1`
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, sku).Scan(&b.SKU, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE) hasta el
// fin de la transacción. (nil, nil) si el SKU no tiene fila de saldo.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, sku string) (*entity.Balance, error) {
	query := `
		SELECT sku, quantity, updated_at
		FROM stock_balances WHERE sku = $1
		FOR UPDATE`
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, sku).Scan(&b.SKU, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Create inserta la fila de saldo del SKU (alta de producto, cantidad cero).
func (r *BalanceRepo) Create(ctx context.Context, balance *entity.Balance) error {
	query := `
		INSERT INTO stock_balances (sku, quantity, updated_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, balance.SKU, balance.Quantity, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// Update reescribe cantidad y fecha del saldo ya bloqueado por la transacción.
func (r *BalanceRepo) Update(ctx context.Context, balance *entity.Balance) error {
	query := `
		UPDATE stock_balances SET quantity = $2, updated_at = $3
		WHERE sku = $1`
	_, err := r.q.Exec(ctx, query, balance.SKU, balance.Quantity, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}
