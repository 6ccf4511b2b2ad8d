package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	CompraPendiente = "pendiente"
	CompraPagada    = "pagada"
)

// Compra registra una factura de proveedor. TasaCambio es la tasa
// aplicada a los costos USD de esa factura en particular.
type Compra struct {
	ID          int64
	ProveedorID int64
	Documento   string
	FechaCompra time.Time
	TasaCambio  decimal.Decimal
	SubtotalVES decimal.Decimal
	TotalVES    decimal.Decimal
	Estado      string
	Notas       string
}

// DetalleCompra es una línea de compra con el costo unitario en ambas monedas.
type DetalleCompra struct {
	ID                int64
	CompraID          int64
	ProductoID        int64
	Cantidad          decimal.Decimal
	PrecioUnitarioUSD decimal.Decimal
	PrecioUnitarioVES decimal.Decimal
	SubtotalVES       decimal.Decimal
}

// CompraResumen es la vista de listado de compras con datos del proveedor.
type CompraResumen struct {
	Compra
	ProveedorNombre   string
	ProveedorRIF      string
	ProveedorTelefono string
}

// DetalleCompraResumen es la vista de detalle con el nombre del producto.
type DetalleCompraResumen struct {
	DetalleCompra
	NombreProducto string
}
