package entity

import "time"

// Proveedor de mercancía (cuentas por pagar). Eliminación lógica vía Activo.
type Proveedor struct {
	ID            int64
	Nombre        string
	Contacto      string
	Telefono      string
	Email         string
	Direccion     string
	RIF           string
	Notas         string
	Activo        bool
	FechaRegistro time.Time
}
