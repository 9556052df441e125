package postgres

import (
	"context"
	"fmt"

	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo verificación de consistencia del libro sobre PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el verificador. Pasar pool (es solo lectura).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CheckConsistency compara cada saldo materializado contra la suma firmada de
// sus movimientos (entradas positivas, salidas negativas). El FULL JOIN también
// atrapa movimientos huérfanos sin fila de saldo y saldos negativos.
func (r *LedgerRepo) CheckConsistency(ctx context.Context) ([]repository.LedgerMismatch, error) {
	query := `
		SELECT COALESCE(b.sku, m.sku) AS sku,
		       COALESCE(b.quantity, 0) AS balance,
		       COALESCE(m.total, 0) AS movement_sum
		FROM stock_balances b
		FULL JOIN (
			SELECT sku,
			       SUM(CASE WHEN direction = 'E' THEN quantity ELSE -quantity END) AS total
			FROM stock_movements
			GROUP BY sku
		) m ON m.sku = b.sku
		WHERE COALESCE(b.quantity, 0) <> COALESCE(m.total, 0)
		   OR COALESCE(b.quantity, 0) < 0
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("check ledger consistency: %w", err)
	}
	defer rows.Close()
	var mismatches []repository.LedgerMismatch
	for rows.Next() {
		var mm repository.LedgerMismatch
		if err := rows.Scan(&mm.SKU, &mm.Balance, &mm.MovementSum); err != nil {
			return nil, fmt.Errorf("scan mismatch: %w", err)
		}
		mismatches = append(mismatches, mm)
	}
	return mismatches, rows.Err()
}
