package stock

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		balanceRepo repository.BalanceRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// CatalogExporter serializa el catálogo con saldos a un archivo descargable.
type CatalogExporter interface {
	ExportCatalog(ctx context.Context, items []repository.ProductWithBalance) ([]byte, error)
}
