package entity

import "time"

// VentaEspera es un carrito guardado para retomarlo después (operación
// en espera). DatosCarrito es un blob JSON con las líneas del carrito.
type VentaEspera struct {
	ID              int64
	NombreOperacion string
	ClienteID       *int64
	FechaCreacion   time.Time
	DatosCarrito    []byte
	Notas           string
}
