package analytics

import (
	"context"

	"github.com/sige-scm/sige-backend/internal/domain/analytics"
)

// SourceReader extrae el dataset plano de la cadena de suministro.
type SourceReader interface {
	Read(ctx context.Context) ([]analytics.SourceRecord, error)
}

// OLAPStore administra el esquema estrella en el almacén analítico.
type OLAPStore interface {
	// RecreateSchema dropea y vuelve a crear las tablas dim_* y fact_* en una
	// sola transacción.
	RecreateSchema(ctx context.Context) error
	// LoadStar trunca y carga cada tabla del esquema, dimensiones antes que hechos.
	LoadStar(ctx context.Context, star analytics.StarSchema) error
}
