package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
)

// MovimientoInventario es un registro inmutable del libro de inventario:
// un solo cambio de stock con su causa. Cantidad es el delta con signo
// (negativo en salidas) y siempre CantidadNueva - CantidadAnterior == Cantidad.
// Nunca se edita ni se borra.
type MovimientoInventario struct {
	ID               int64
	ProductoID       int64
	Tipo             string
	Cantidad         decimal.Decimal // delta con signo
	CantidadAnterior decimal.Decimal
	CantidadNueva    decimal.Decimal
	Motivo           string
	Usuario          string
	LoteID           string // agrupa los movimientos de una misma transacción
	FechaMovimiento  time.Time
}
