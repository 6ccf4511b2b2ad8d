package repository

import "context"

// MonedaRepository puerto de la configuración multimoneda (clave/valor).
// Get devuelve cadena vacía sin error cuando la clave no existe; el caller
// decide el valor por defecto.
type MonedaRepository interface {
	Get(ctx context.Context, nombre string) (string, error)
	Set(ctx context.Context, nombre, valor string) error
}
