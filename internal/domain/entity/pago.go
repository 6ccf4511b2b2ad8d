package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas soportadas por los pagos.
const (
	MonedaUSD = "USD"
	MonedaVES = "VES"
)

// PagoDocumento registra un pago (posiblemente parcial) de una venta.
// TasaCambio es la tasa vigente al momento del pago, que puede diferir
// de la tasa actual del sistema. MontoEquivalenteUSD normaliza el monto
// a la moneda de referencia.
type PagoDocumento struct {
	ID                  int64
	VentaID             int64
	NumeroDocumento     string
	TipoPago            string // efectivo, tarjeta, transferencia, pago_movil...
	MontoPagado         decimal.Decimal
	MonedaPago          string
	TasaCambio          decimal.Decimal
	MontoEquivalenteUSD decimal.Decimal
	DetallesPago        string // blob libre (JSON)
	FechaPago           time.Time
}
