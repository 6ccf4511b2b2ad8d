package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación de MovimientoRepository sobre SQLite.
// El libro es de solo inserción: no expone Update ni Delete.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create inserta un movimiento en el libro y asigna su ID.
func (r *MovimientoRepo) Create(ctx context.Context, m *entity.MovimientoInventario) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO movimientos_inventario (producto_id, tipo_movimiento, cantidad,
			cantidad_anterior, cantidad_nueva, motivo, usuario, lote_id, fecha_movimiento)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ProductoID, m.Tipo, m.Cantidad, m.CantidadAnterior, m.CantidadNueva,
		nullStr(m.Motivo), nullStr(m.Usuario), nullStr(m.LoteID), m.FechaMovimiento)
	if err != nil {
		return mapErr("insert movimiento", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert movimiento: last insert id: %w", err)
	}
	m.ID = id
	return nil
}

// ListByProducto lista el historial de un producto, lo más reciente primero.
func (r *MovimientoRepo) ListByProducto(ctx context.Context, productoID int64, limit, offset int) ([]*entity.MovimientoInventario, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, producto_id, tipo_movimiento, cantidad, cantidad_anterior,
			cantidad_nueva, motivo, usuario, lote_id, fecha_movimiento
		FROM movimientos_inventario
		WHERE producto_id = ?
		ORDER BY fecha_movimiento DESC, id DESC
		LIMIT ? OFFSET ?`, productoID, limit, offset)
	if err != nil {
		return nil, mapErr("list movimientos", err)
	}
	defer rows.Close()
	list := []*entity.MovimientoInventario{}
	for rows.Next() {
		var m entity.MovimientoInventario
		var motivo, usuario, loteID sql.NullString
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad,
			&m.CantidadAnterior, &m.CantidadNueva, &motivo, &usuario, &loteID,
			&m.FechaMovimiento); err != nil {
			return nil, fmt.Errorf("list movimientos: scan: %w", err)
		}
		m.Motivo = strOrEmpty(motivo)
		m.Usuario = strOrEmpty(usuario)
		m.LoteID = strOrEmpty(loteID)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByProducto suma los deltas del libro para un producto. Con el libro
// íntegro, el resultado coincide con stock_actual.
func (r *MovimientoRepo) SumByProducto(ctx context.Context, productoID int64) (decimal.Decimal, error) {
	var suma decimal.NullDecimal
	err := r.q.QueryRowContext(ctx,
		`SELECT SUM(cantidad) FROM movimientos_inventario WHERE producto_id = ?`,
		productoID).Scan(&suma)
	if err != nil {
		return decimal.Zero, mapErr("sum movimientos", err)
	}
	if !suma.Valid {
		return decimal.Zero, nil
	}
	return suma.Decimal, nil
}
