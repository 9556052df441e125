package stock

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

// ConsistencyUseCase verifica el invariante del libro contra el almacenamiento:
// para todo SKU, el saldo cacheado debe igualar la suma con signo de sus
// movimientos, y nunca ser negativo.
type ConsistencyUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewConsistencyUseCase construye el caso de uso.
func NewConsistencyUseCase(ledgerRepo repository.LedgerRepository) *ConsistencyUseCase {
	return &ConsistencyUseCase{ledgerRepo: ledgerRepo}
}

// Check devuelve los SKUs cuyo saldo no cuadra con el log de movimientos.
// Lista vacía significa libro consistente.
func (uc *ConsistencyUseCase) Check(ctx context.Context) ([]repository.LedgerMismatch, error) {
	return uc.ledgerRepo.CheckConsistency(ctx)
}
