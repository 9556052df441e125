package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductRequest entrada para dar de alta un SKU.
type RegisterProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	MinLevel int64           `json:"min_level" validate:"min=0"`
	MaxLevel int64           `json:"max_level" validate:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
}

// RegisterProductResponse confirmación del alta.
type RegisterProductResponse struct {
	Message string `json:"message"`
	SKU     string `json:"sku"`
}

// PostMovementRequest body para registrar una entrada o salida de stock.
type PostMovementRequest struct {
	SKU       string `json:"sku" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=E S"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// PostMovementResponse resultado del registro de un movimiento.
type PostMovementResponse struct {
	Message      string `json:"message"`
	SKU          string `json:"sku"`
	NewBalance   int64  `json:"new_balance"`
	BelowMinimum bool   `json:"below_minimum"`
}

// BalanceResponse saldo actual de un SKU.
type BalanceResponse struct {
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogItemResponse una fila del listado de catálogo con saldo.
type CatalogItemResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Balance   int64           `json:"balance"`
	MinLevel  int64           `json:"min_level"`
	Cost      decimal.Decimal `json:"cost"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CatalogResponse listado completo de productos con sus saldos.
type CatalogResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Total int                   `json:"total"`
}

// MovementResponse una línea del historial de movimientos.
type MovementResponse struct {
	ID        int64     `json:"id"`
	SKU       string    `json:"sku"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	MovedAt   time.Time `json:"moved_at"`
}

// MovementListResponse historial paginado de un SKU.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LedgerMismatchDTO un SKU cuyo saldo no cuadra con sus movimientos.
type LedgerMismatchDTO struct {
	SKU         string `json:"sku"`
	Balance     int64  `json:"balance"`
	MovementSum int64  `json:"movement_sum"`
}

// ConsistencyResponse resultado de la verificación del libro.
type ConsistencyResponse struct {
	Consistent bool                `json:"consistent"`
	Mismatches []LedgerMismatchDTO `json:"mismatches,omitempty"`
}
