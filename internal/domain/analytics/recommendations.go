package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Umbrales de decisión del tablero.
const (
	stockRiskCritical = 0.70 // por encima: quiebre inminente
	stockRiskStable   = 0.20 // por debajo: nivel seguro
	carrierRateBest   = 0.90
	carrierRateBad    = 0.70
	supplierDefectMax = 0.10 // corte de tasa de defectos aceptable
)

// StockRecommendation devuelve la acción sugerida para un SKU según su riesgo
// de quiebre de stock.
func StockRecommendation(stockoutRisk float64) string {
	switch {
	case stockoutRisk > stockRiskCritical:
		return "ACCIÓN CRÍTICA: riesgo inminente de quiebre de stock. Emitir orden de compra urgente."
	case stockoutRisk < stockRiskStable:
		return "ESTABLE: nivel seguro. Ninguna acción necesaria."
	default:
		return "ATENCIÓN: monitorear el consumo diario."
	}
}

// ProductHighlight anota un producto del top de ingresos. El líder del ranking
// es el producto estrella; los demás son de alto desempeño.
func ProductHighlight(isLeader bool) string {
	if isLeader {
		return "PRODUCTO ESTRELLA: garantizar disponibilidad total."
	}
	return "Producto de alto desempeño."
}

// CarrierDecision clasifica una transportadora a partir de su puntualidad y su
// costo medio, comparados con la media y el percentil 75 de la flota.
func CarrierDecision(onTimeRate, avgCost, fleetMeanCost, fleetP75Cost float64) string {
	switch {
	case onTimeRate > carrierRateBest && avgCost < fleetMeanCost:
		return "MEJOR OPCIÓN: alta eficiencia y bajo costo. Aumentar volumen."
	case onTimeRate < carrierRateBad:
		return "PROBLEMA: puntualidad crítica. Renegociar o sustituir."
	case avgCost > fleetP75Cost:
		return "COSTO ALTO: verificar si la ruta justifica el precio."
	default:
		return "Mantener monitoreo."
	}
}

// SupplierAction sugiere la acción para un proveedor según su tasa media de
// defectos, relativa al mejor y al peor del ranking.
func SupplierAction(defectRate, bestRate, worstRate float64) string {
	switch {
	case defectRate == bestRate:
		return fmt.Sprintf("RECOMENDADO: menor tasa de defectos (%.2f). Aumentar compras a este proveedor.", defectRate)
	case defectRate == worstRate:
		return fmt.Sprintf("ACCIÓN NECESARIA: peor tasa (%.2f). Exigir plan de acción correctiva inmediato.", defectRate)
	case defectRate > supplierDefectMax:
		return "ALERTA: tasa de defectos por encima de lo aceptable. Monitorear lotes."
	default:
		return "Proveedor dentro de la media del mercado."
	}
}

// Mean promedio aritmético; 0 para la lista vacía.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile percentil p (0..1) con interpolación lineal entre observaciones,
// el mismo método por defecto del tablero original. 0 para la lista vacía.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
