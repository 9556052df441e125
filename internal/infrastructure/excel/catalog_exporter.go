// Package excel genera la planilla XLSX del catálogo de productos con saldos.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sige-scm/sige-backend/internal/application/stock"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

var _ stock.CatalogExporter = (*CatalogExporter)(nil)

const sheetName = "Catalogo"

// CatalogExporter implementa stock.CatalogExporter usando excelize.
type CatalogExporter struct{}

func NewCatalogExporter() *CatalogExporter { return &CatalogExporter{} }

// ExportCatalog escribe una fila por producto: datos maestros + saldo actual.
func (e *CatalogExporter) ExportCatalog(_ context.Context, items []repository.ProductWithBalance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "SKU")
	f.SetCellValue(sheetName, "B1", "Nombre")
	f.SetCellValue(sheetName, "C1", "Nivel mínimo")
	f.SetCellValue(sheetName, "D1", "Nivel máximo")
	f.SetCellValue(sheetName, "E1", "Costo")
	f.SetCellValue(sheetName, "F1", "Saldo")
	f.SetCellValue(sheetName, "G1", "Actualizado")

	for i, it := range items {
		r := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+r, it.Product.SKU)
		f.SetCellValue(sheetName, "B"+r, it.Product.Name)
		f.SetCellValue(sheetName, "C"+r, it.Product.MinLevel)
		f.SetCellValue(sheetName, "D"+r, it.Product.MaxLevel)
		f.SetCellValue(sheetName, "E"+r, it.Product.Cost.InexactFloat64())
		f.SetCellValue(sheetName, "F"+r, it.Balance)
		f.SetCellValue(sheetName, "G"+r, it.BalanceUpdatedAt.Format("2006-01-02 15:04"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
