package stock

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

// ExportUseCase arma la descarga del catálogo con saldos.
type ExportUseCase struct {
	productRepo repository.ProductRepository
	exporter    CatalogExporter
}

func NewExportUseCase(productRepo repository.ProductRepository, exporter CatalogExporter) *ExportUseCase {
	return &ExportUseCase{productRepo: productRepo, exporter: exporter}
}

// CatalogXLSX devuelve la planilla con todos los productos y su saldo actual.
func (uc *ExportUseCase) CatalogXLSX(ctx context.Context) ([]byte, error) {
	items, err := uc.productRepo.ListWithBalances(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportCatalog(ctx, items)
}
