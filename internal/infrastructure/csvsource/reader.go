// Package csvsource extrae el dataset plano de la cadena de suministro desde
// un archivo CSV con los encabezados del dataset público de Kaggle.
package csvsource

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	appanalytics "github.com/sige-scm/sige-backend/internal/application/analytics"
	"github.com/sige-scm/sige-backend/internal/domain/analytics"
)

var _ appanalytics.SourceReader = (*Reader)(nil)

// Reader lee el CSV fuente completo en memoria (el dataset ronda las cien filas).
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read abre el archivo y decodifica todas las filas por nombre de columna.
func (r *Reader) Read(ctx context.Context) ([]analytics.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open source csv %s: %w", r.path, err)
	}
	defer f.Close()

	var records []analytics.SourceRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("decode source csv: %w", err)
	}
	return records, nil
}
