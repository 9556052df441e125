package entity

import "time"

// Direcciones de movimiento de stock (códigos fijos del protocolo).
const (
	DirectionIn  = "E" // entrada
	DirectionOut = "S" // salida
)

// ValidDirection reporta si s es un código de dirección conocido.
func ValidDirection(s string) bool {
	return s == DirectionIn || s == DirectionOut
}

// Movement representa una línea del libro de movimientos (append-only).
// El ID lo asigna la base de datos de forma estrictamente creciente; una vez
// registrado, el movimiento nunca se modifica ni se borra.
type Movement struct {
	ID        int64
	SKU       string
	Direction string // E o S
	Quantity  int64  // siempre positivo; el signo lo aporta la dirección
	MovedAt   time.Time
}

// SignedQuantity devuelve la cantidad con signo según la dirección
// (positiva para entradas, negativa para salidas).
func (m Movement) SignedQuantity() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
