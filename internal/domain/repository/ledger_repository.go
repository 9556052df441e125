package repository

import "context"

// LedgerMismatch un SKU cuyo saldo materializado no coincide con la suma de sus
// movimientos firmados, o cuyo saldo es negativo.
type LedgerMismatch struct {
	SKU         string
	Balance     int64
	MovementSum int64
}

// LedgerRepository define la verificación de consistencia del libro completo.
// Implementaciones read-only.
type LedgerRepository interface {
	// CheckConsistency compara, para cada SKU, el saldo materializado contra
	// SUM(entradas) − SUM(salidas) y devuelve los SKUs que no cuadran.
	// Lista vacía = libro consistente.
	CheckConsistency(ctx context.Context) ([]LedgerMismatch, error)
}
