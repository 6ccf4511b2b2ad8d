package entity

import "time"

// Categoria agrupa productos del catálogo.
type Categoria struct {
	ID            int64
	Nombre        string // único
	Descripcion   string
	Activo        bool
	FechaCreacion time.Time
}
