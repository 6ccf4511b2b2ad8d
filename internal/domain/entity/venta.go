package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	VentaCompletada = "completada"
	VentaAnulada    = "anulada"
)

// Venta es la cabecera de una transacción de venta. Inmutable una vez
// confirmada; las correcciones se hacen con movimientos compensatorios.
// Total = Subtotal + Impuesto - Descuento.
type Venta struct {
	ID         int64
	ClienteID  *int64
	FechaVenta time.Time
	Subtotal   decimal.Decimal
	Impuesto   decimal.Decimal
	Descuento  decimal.Decimal
	Total      decimal.Decimal
	MetodoPago string
	Estado     string
	Notas      string
}

// DetalleVenta es una línea de venta. PrecioUnitario es una foto del
// precio al momento de vender; nunca se recalcula desde el catálogo.
type DetalleVenta struct {
	ID             int64
	VentaID        int64
	ProductoID     int64
	NombreProducto string // solo en lecturas (join con productos)
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
