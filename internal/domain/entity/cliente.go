package entity

import "time"

// Cliente de la tienda. Se desactiva con Activo=false, nunca se borra
// mientras tenga ventas asociadas.
type Cliente struct {
	ID            int64
	Nombre        string
	Apellido      string
	RIF           string
	Telefono      string
	Email         string
	Direccion     string
	Activo        bool
	FechaRegistro time.Time
}
