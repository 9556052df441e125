package stock

import (
	"context"
	"time"

	"github.com/sige-scm/sige-backend/internal/domain"
	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
	"github.com/sige-scm/sige-backend/pkg/metrics"
)

// PostMovementUseCase registra movimientos de stock de forma transaccional
// (E entrada, S salida) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type PostMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
}

// NewPostMovementUseCase construye el caso de uso.
func NewPostMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	m *metrics.Metrics,
) *PostMovementUseCase {
	return &PostMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		metrics:     m,
	}
}

// MovementInputDTO entrada para registrar un movimiento de stock.
type MovementInputDTO struct {
	SKU       string
	Direction string
	Quantity  int64
}

// MovementResultDTO resultado de un movimiento registrado.
type MovementResultDTO struct {
	SKU          string
	NewBalance   int64
	BelowMinimum bool
}

// PostMovement inicia una transacción, bloquea la fila de saldo (SELECT FOR UPDATE),
// valida el disponible en salidas, agrega el movimiento al log inmutable y sobreescribe
// el saldo; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
// La alerta de nivel mínimo se evalúa después del commit, fuera del lock, solo en salidas.
func (uc *PostMovementUseCase) PostMovement(ctx context.Context, input MovementInputDTO) (*MovementResultDTO, error) {
	// Validación de frontera, antes de abrir la transacción
	if input.SKU == "" || !entity.ValidDirection(input.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var newBalance int64

	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		balanceRepo repository.BalanceRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila de saldo; serializa los movimientos concurrentes del mismo SKU.
		// El lock se libera recién en el Commit o Rollback.
		balance, err := balanceRepo.GetForUpdate(ctx, input.SKU)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrNotFound
		}

		// Verifica StockActual >= CantidadSolicitada antes de restar
		if input.Direction == entity.DirectionOut && input.Quantity > balance.Quantity {
			if uc.metrics != nil {
				uc.metrics.StockRejections.Inc()
			}
			return &domain.InsufficientStockError{
				SKU:       input.SKU,
				Available: balance.Quantity,
				Requested: input.Quantity,
			}
		}

		// Guarda registro en stock_movements (el id secuencial lo asigna la BD)
		mov := &entity.Movement{
			SKU:       input.SKU,
			Direction: input.Direction,
			Quantity:  input.Quantity,
			MovedAt:   now,
		}
		if err := movementRepo.Append(ctx, mov); err != nil {
			return err
		}

		// Sobreescribe el saldo con el nuevo valor
		balance.Quantity += mov.SignedQuantity()
		balance.UpdatedAt = now
		if err := balanceRepo.Update(ctx, balance); err != nil {
			return err
		}
		newBalance = balance.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsPosted.WithLabelValues(input.Direction).Inc()
	}

	// Alerta de reposición: lectura posterior al commit, sin lock. Es puramente
	// informativa; si la lectura falla el movimiento ya quedó registrado y la
	// alerta se reporta en false.
	belowMinimum := false
	if input.Direction == entity.DirectionOut {
		if product, err := uc.productRepo.GetBySKU(ctx, input.SKU); err == nil && product != nil {
			belowMinimum = newBalance < product.MinLevel
		}
	}

	return &MovementResultDTO{
		SKU:          input.SKU,
		NewBalance:   newBalance,
		BelowMinimum: belowMinimum,
	}, nil
}
