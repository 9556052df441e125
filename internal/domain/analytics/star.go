package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DimProduct dimensión de producto (clave natural: el SKU del dataset).
type DimProduct struct {
	SKUID             string
	ProductName       string
	Category          string
	ManufacturingCost decimal.Decimal
	UnitPrice         decimal.Decimal
}

// DimSupplier dimensión de proveedor (clave sustituta FORN_n).
type DimSupplier struct {
	SupplierID   string
	SupplierName string
	Location     string
}

// DimCarrier dimensión de transportadora (clave sustituta CAR_n).
type DimCarrier struct {
	CarrierID     string
	CarrierName   string
	TransportMode string
}

// DimDate dimensión de tiempo (una fila por fecha de pedido sintética).
type DimDate struct {
	DateID time.Time // solo la parte de fecha es significativa
	Year   int
	Month  int
	Day    int
}

// FactSales una fila del hecho de ventas y logística.
type FactSales struct {
	DateID       time.Time
	SKUID        string
	SupplierID   string
	CarrierID    string
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	GrossMargin  decimal.Decimal // TotalRevenue − TotalCost
	UnitsSold    int64
	ShippingCost decimal.Decimal
	OnTime       bool // entrega dentro del plazo (simulada)
	DefectRate   float64
}

// FactStock una fila del hecho de estoque analítico.
type FactStock struct {
	DateID          time.Time
	SKUID           string
	StockLevel      int64
	MonthlyTurnover float64 // simulada, U(0.5, 5.0)
	StockoutRisk    float64 // simulada, U(0.01, 0.9)
}

// StarSchema el resultado completo de una transformación: dimensiones + hechos.
type StarSchema struct {
	Products  []DimProduct
	Suppliers []DimSupplier
	Carriers  []DimCarrier
	Dates     []DimDate
	Sales     []FactSales
	Stock     []FactStock
}
