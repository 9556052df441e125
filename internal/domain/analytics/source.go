// Package analytics contiene el modelo del esquema estrella, la transformación
// CSV → estrella y las reglas de decisión del tablero (servicios de dominio puros,
// sin acceso a infraestructura).
package analytics

// SourceRecord una fila del dataset de cadena de suministro (encabezados del CSV
// de origen). gocsv mapea por nombre de columna.
type SourceRecord struct {
	SKU             string  `csv:"SKU"`
	ProductType     string  `csv:"Product type"`
	Price           float64 `csv:"Price"`
	UnitsSold       int64   `csv:"Number of products sold"`
	Revenue         float64 `csv:"Revenue generated"`
	SupplierName    string  `csv:"Supplier name"`
	Location        string  `csv:"Location"`
	StockLevel      int64   `csv:"Stock levels"`
	ManufacturCost  float64 `csv:"Manufacturing costs"`
	ShippingCarrier string  `csv:"Shipping carriers"`
	ShippingCost    float64 `csv:"Shipping costs"`
	TransportMode   string  `csv:"Transportation modes"`
	DefectRate      float64 `csv:"Defect rates"`
}
