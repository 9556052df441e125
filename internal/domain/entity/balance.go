package entity

import "time"

// Balance representa el saldo actual de un SKU (fila materializada, una por producto).
// Derivable de los movimientos; se materializa para lecturas rápidas y para el
// bloqueo de fila que serializa las salidas concurrentes.
type Balance struct {
	SKU       string
	Quantity  int64 // invariante: nunca negativo
	UpdatedAt time.Time
}
