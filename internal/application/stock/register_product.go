package stock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// RegisterProductUseCase da de alta productos con su saldo inicial en cero.
type RegisterProductUseCase struct {
	txRunner TxRunner
	metrics  *metrics.Metrics
}

// NewRegisterProductUseCase construye el caso de uso.
func NewRegisterProductUseCase(txRunner TxRunner, m *metrics.Metrics) *RegisterProductUseCase {
	return &RegisterProductUseCase{txRunner: txRunner, metrics: m}
}

// RegisterInputDTO entrada para registrar un producto.
type RegisterInputDTO struct {
	SKU      string
	Name     string
	MinLevel int64
	MaxLevel int64
	Cost     decimal.Decimal
}

// Register crea el producto y su saldo en cero dentro de una sola transacción:
// si cualquiera de los dos INSERT falla, ninguno persiste.
// SKU duplicado → domain.ErrDuplicate, tanto por el pre-chequeo como por la
// violación de unicidad (23505) si un registro gemelo comitea en paralelo.
func (uc *RegisterProductUseCase) Register(ctx context.Context, input RegisterInputDTO) (*entity.Product, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	if input.SKU == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		SKU:       input.SKU,
		Name:      input.Name,
		MinLevel:  input.MinLevel,
		MaxLevel:  input.MaxLevel,
		Cost:      input.Cost,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.MovementRepository,
	) error {
		existing, err := productRepo.GetBySKU(ctx, input.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		balance := &entity.Balance{SKU: input.SKU, Quantity: 0, UpdatedAt: now}
		return balanceRepo.Create(ctx, balance)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ProductsRegistered.Inc()
	}
	return product, nil
}
