package analytics

import (
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Probabilidad de entrega dentro del plazo en la simulación del flag logístico.
const onTimeProbability = 0.85

// Rangos de las métricas simuladas de estoque analítico.
const (
	turnoverMin = 0.5
	turnoverMax = 5.0
	riskMin     = 0.01
	riskMax     = 0.9
)

// Transform convierte las filas del dataset en el esquema estrella completo.
//
// Reglas (las mismas del pipeline original):
//   - fecha de pedido sintética = runDate − índice de fila, en días;
//   - flag de entrega a tiempo ~ Bernoulli(0.85), sorteado para todas las filas
//     de entrada antes del filtrado;
//   - ids sustitutos FORN_n / CAR_n con n = posición del nombre entre los
//     nombres distintos ordenados; nombre vacío → n = −1;
//   - filas sin SKU se descartan;
//   - dimensiones deduplicadas por clave conservando la primera aparición;
//   - margen bruto = ingreso − costo, sobre valores ya redondeados a 2 decimales;
//   - rotación mensual ~ U(0.5, 5.0) y riesgo de quiebre ~ U(0.01, 0.9),
//     sorteados solo para las filas conservadas.
//
// rng se inyecta para que las corridas sean reproducibles en tests.
func Transform(records []SourceRecord, runDate time.Time, rng *rand.Rand) StarSchema {
	supplierRank := rankByName(records, func(r SourceRecord) string { return r.SupplierName })
	carrierRank := rankByName(records, func(r SourceRecord) string { return r.ShippingCarrier })

	// Flags sorteados para todas las filas, incluidas las que luego se descartan.
	onTime := make([]bool, len(records))
	for i := range records {
		onTime[i] = rng.Float64() < onTimeProbability
	}

	day := truncateToDay(runDate)

	var star StarSchema
	seenProducts := make(map[string]bool)
	seenSuppliers := make(map[string]bool)
	seenCarriers := make(map[string]bool)
	seenDates := make(map[time.Time]bool)

	for i, rec := range records {
		if rec.SKU == "" {
			continue
		}

		dateID := day.AddDate(0, 0, -i)
		supplierID := "FORN_" + strconv.Itoa(supplierRank[rec.SupplierName])
		carrierID := "CAR_" + strconv.Itoa(carrierRank[rec.ShippingCarrier])

		revenue := decimal.NewFromFloat(rec.Revenue).Round(2)
		cost := decimal.NewFromFloat(rec.ManufacturCost).Round(2)
		price := decimal.NewFromFloat(rec.Price).Round(2)
		shipping := decimal.NewFromFloat(rec.ShippingCost).Round(2)

		if !seenProducts[rec.SKU] {
			seenProducts[rec.SKU] = true
			star.Products = append(star.Products, DimProduct{
				SKUID:             rec.SKU,
				ProductName:       rec.SKU,
				Category:          rec.ProductType,
				ManufacturingCost: cost,
				UnitPrice:         price,
			})
		}
		if !seenSuppliers[supplierID] {
			seenSuppliers[supplierID] = true
			star.Suppliers = append(star.Suppliers, DimSupplier{
				SupplierID:   supplierID,
				SupplierName: rec.SupplierName,
				Location:     rec.Location,
			})
		}
		if !seenCarriers[carrierID] {
			seenCarriers[carrierID] = true
			star.Carriers = append(star.Carriers, DimCarrier{
				CarrierID:     carrierID,
				CarrierName:   rec.ShippingCarrier,
				TransportMode: rec.TransportMode,
			})
		}
		if !seenDates[dateID] {
			seenDates[dateID] = true
			star.Dates = append(star.Dates, DimDate{
				DateID: dateID,
				Year:   dateID.Year(),
				Month:  int(dateID.Month()),
				Day:    dateID.Day(),
			})
		}

		star.Sales = append(star.Sales, FactSales{
			DateID:       dateID,
			SKUID:        rec.SKU,
			SupplierID:   supplierID,
			CarrierID:    carrierID,
			TotalRevenue: revenue,
			TotalCost:    cost,
			GrossMargin:  revenue.Sub(cost),
			UnitsSold:    rec.UnitsSold,
			ShippingCost: shipping,
			OnTime:       onTime[i],
			DefectRate:   rec.DefectRate,
		})
		star.Stock = append(star.Stock, FactStock{
			DateID:          dateID,
			SKUID:           rec.SKU,
			StockLevel:      rec.StockLevel,
			MonthlyTurnover: turnoverMin + rng.Float64()*(turnoverMax-turnoverMin),
			StockoutRisk:    riskMin + rng.Float64()*(riskMax-riskMin),
		})
	}
	return star
}

// rankByName asigna a cada nombre su posición entre los nombres distintos
// ordenados lexicográficamente (el equivalente de los category codes del
// pipeline original). El nombre vacío queda fuera del orden y recibe −1.
func rankByName(records []SourceRecord, name func(SourceRecord) string) map[string]int {
	distinct := make(map[string]bool)
	for _, r := range records {
		if n := name(r); n != "" {
			distinct[n] = true
		}
	}
	names := make([]string, 0, len(distinct))
	for n := range distinct {
		names = append(names, n)
	}
	sort.Strings(names)

	rank := make(map[string]int, len(names)+1)
	rank[""] = -1
	for i, n := range names {
		rank[n] = i
	}
	return rank
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
