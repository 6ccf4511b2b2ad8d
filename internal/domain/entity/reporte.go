package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VentaResumen es la vista de listado de ventas con datos del cliente.
type VentaResumen struct {
	Venta
	ClienteNombre   string
	ClienteApellido string
}

// TotalesDia agrega las ventas de un día.
type TotalesDia struct {
	TotalVentas    int64
	TotalIngresos  decimal.Decimal
	TotalSubtotal  decimal.Decimal
	TotalImpuesto  decimal.Decimal
	TotalDescuento decimal.Decimal
	TicketPromedio decimal.Decimal
}

// VentasPorMetodo desglosa el día por método de pago.
type VentasPorMetodo struct {
	MetodoPago string
	Ventas     int64
	Total      decimal.Decimal
	Promedio   decimal.Decimal
}

// ProductoVendido es una fila del ranking de productos más vendidos.
type ProductoVendido struct {
	Nombre          string
	CantidadVendida decimal.Decimal
	TotalVendido    decimal.Decimal
}

// CorteDia es el corte de caja de un día: insumo de los reportes y del
// exportador PDF externo.
type CorteDia struct {
	Fecha                time.Time
	Totales              TotalesDia
	ResumenPagos         []VentasPorMetodo
	ProductosMasVendidos []ProductoVendido
}

// PagoResumen es un pago con los datos de su venta (reportes por fecha).
type PagoResumen struct {
	PagoDocumento
	FechaVenta time.Time
	TotalVenta decimal.Decimal
}
