package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un SKU del catálogo con sus niveles de reposición.
// El saldo físico vive en Balance (relación 1:1 por SKU); aquí solo la ficha maestra.
type Product struct {
	SKU       string // identificador natural, clave primaria
	Name      string
	MinLevel  int64           // nivel mínimo: por debajo se dispara la alerta de reposición
	MaxLevel  int64           // nivel máximo informativo
	Cost      decimal.Decimal // costo de fabricación unitario
	CreatedAt time.Time
	UpdatedAt time.Time
}
