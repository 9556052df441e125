package stock

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

// QueryUseCase lecturas del libro de inventario: saldos, catálogo e historial.
// Solo lecturas comprometidas; nunca toma locks ni bloquea a los escritores.
type QueryUseCase struct {
	productRepo  repository.ProductRepository
	balanceRepo  repository.BalanceRepository
	movementRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de lecturas.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo:  productRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

// GetBalance devuelve el último saldo comiteado del SKU.
// SKU sin registrar → domain.ErrNotFound.
func (uc *QueryUseCase) GetBalance(ctx context.Context, sku string) (*entity.Balance, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	balance, err := uc.balanceRepo.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotFound
	}
	return balance, nil
}

// ListProducts devuelve el catálogo completo con su saldo actual.
// Cada llamada rederiva el snapshot vigente; el orden por SKU es estable.
func (uc *QueryUseCase) ListProducts(ctx context.Context) ([]repository.ProductWithBalance, error) {
	return uc.productRepo.ListWithBalances(ctx)
}

// ListMovements devuelve el historial de movimientos del SKU, del más reciente
// al más antiguo. SKU sin registrar → domain.ErrNotFound.
func (uc *QueryUseCase) ListMovements(ctx context.Context, sku string, limit, offset int) ([]*entity.Movement, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListBySKU(ctx, sku, limit, offset)
}
