package entity

import "time"

// Estados de una corrida del pipeline analítico.
const (
	ETLRunStatusRunning = "running"
	ETLRunStatusOK      = "ok"
	ETLRunStatusError   = "error"
)

// ETLRun registra una corrida del refresh del esquema estrella (historial operativo).
type ETLRun struct {
	ID         string // UUID
	StartedAt  time.Time
	FinishedAt *time.Time // nil mientras la corrida está en curso
	Status     string
	SourceRows int   // filas leídas del CSV
	SalesRows  int   // filas cargadas en fact_sales_logistics
	StockRows  int   // filas cargadas en fact_stock_analytics
	Detail     string // mensaje de error cuando Status = error
}
