package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.MonedaRepository = (*MonedaRepo)(nil)

// MonedaRepo implementación de MonedaRepository sobre SQLite.
type MonedaRepo struct {
	q Querier
}

// NewMonedaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMonedaRepository(q Querier) *MonedaRepo {
	return &MonedaRepo{q: q}
}

// Get lee un valor de configuración. Devuelve "" sin error si la clave no
// existe; el caller aplica su valor por defecto.
func (r *MonedaRepo) Get(ctx context.Context, nombre string) (string, error) {
	var valor string
	err := r.q.QueryRowContext(ctx,
		`SELECT valor FROM configuracion_monedas WHERE nombre = ?`, nombre).Scan(&valor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", mapErr("get config moneda", err)
	}
	return valor, nil
}

// Set escribe un valor de configuración (upsert) y estampa la fecha.
func (r *MonedaRepo) Set(ctx context.Context, nombre, valor string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO configuracion_monedas (nombre, valor, fecha_actualizacion)
		VALUES (?, ?, ?)
		ON CONFLICT (nombre) DO UPDATE SET
			valor = excluded.valor,
			fecha_actualizacion = excluded.fecha_actualizacion`,
		nombre, valor, time.Now().UTC())
	if err != nil {
		return mapErr("set config moneda", err)
	}
	return nil
}
