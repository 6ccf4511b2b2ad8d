package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var (
	_ repository.VentaRepository       = (*VentaRepo)(nil)
	_ repository.VentaEsperaRepository = (*VentaEsperaRepo)(nil)
)

// VentaRepo implementación de VentaRepository sobre SQLite. Solo inserta
// y lee: las ventas confirmadas son inmutables.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create inserta la cabecera de una venta y asigna su ID.
func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO ventas (cliente_id, fecha_venta, subtotal, impuesto, descuento, total, metodo_pago, estado, notas)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullInt64(v.ClienteID), v.FechaVenta, v.Subtotal, v.Impuesto, v.Descuento,
		v.Total, v.MetodoPago, v.Estado, nullStr(v.Notas))
	if err != nil {
		return mapErr("insert venta", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert venta: last insert id: %w", err)
	}
	v.ID = id
	return nil
}

// CreateDetalle inserta una línea de venta y asigna su ID.
func (r *VentaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleVenta) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO detalle_ventas (venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES (?, ?, ?, ?, ?)`,
		d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario, d.Subtotal)
	if err != nil {
		return mapErr("insert detalle venta", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert detalle venta: last insert id: %w", err)
	}
	d.ID = id
	return nil
}

// GetByID devuelve (nil, nil) si la venta no existe.
func (r *VentaRepo) GetByID(ctx context.Context, id int64) (*entity.Venta, error) {
	var v entity.Venta
	var clienteID sql.NullInt64
	var notas sql.NullString
	err := r.q.QueryRowContext(ctx, `
		SELECT id, cliente_id, fecha_venta, subtotal, impuesto, descuento, total, metodo_pago, estado, notas
		FROM ventas WHERE id = ?`, id).Scan(
		&v.ID, &clienteID, &v.FechaVenta, &v.Subtotal, &v.Impuesto,
		&v.Descuento, &v.Total, &v.MetodoPago, &v.Estado, &notas)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get venta", err)
	}
	v.ClienteID = int64Ptr(clienteID)
	v.Notas = strOrEmpty(notas)
	return &v, nil
}

// Detalles lista las líneas de una venta con el nombre del producto.
func (r *VentaRepo) Detalles(ctx context.Context, ventaID int64) ([]*entity.DetalleVenta, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT d.id, d.venta_id, d.producto_id, p.nombre, d.cantidad, d.precio_unitario, d.subtotal
		FROM detalle_ventas d
		JOIN productos p ON p.id = d.producto_id
		WHERE d.venta_id = ?
		ORDER BY d.id`, ventaID)
	if err != nil {
		return nil, mapErr("list detalle venta", err)
	}
	defer rows.Close()
	list := []*entity.DetalleVenta{}
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.NombreProducto,
			&d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("list detalle venta: scan: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// VentaEsperaRepo implementación de VentaEsperaRepository sobre SQLite.
type VentaEsperaRepo struct {
	q Querier
}

// NewVentaEsperaRepository construye el adaptador.
func NewVentaEsperaRepository(q Querier) *VentaEsperaRepo {
	return &VentaEsperaRepo{q: q}
}

// Create guarda un carrito en espera y asigna su ID.
func (r *VentaEsperaRepo) Create(ctx context.Context, ve *entity.VentaEspera) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO ventas_espera (nombre_operacion, cliente_id, fecha_creacion, datos_carrito, notas)
		VALUES (?, ?, ?, ?, ?)`,
		ve.NombreOperacion, nullInt64(ve.ClienteID), ve.FechaCreacion,
		string(ve.DatosCarrito), nullStr(ve.Notas))
	if err != nil {
		return mapErr("insert venta espera", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert venta espera: last insert id: %w", err)
	}
	ve.ID = id
	return nil
}

func scanVentaEspera(row rowScanner) (*entity.VentaEspera, error) {
	var ve entity.VentaEspera
	var clienteID sql.NullInt64
	var datos, notas sql.NullString
	if err := row.Scan(&ve.ID, &ve.NombreOperacion, &clienteID, &ve.FechaCreacion,
		&datos, &notas); err != nil {
		return nil, err
	}
	ve.ClienteID = int64Ptr(clienteID)
	ve.DatosCarrito = []byte(strOrEmpty(datos))
	ve.Notas = strOrEmpty(notas)
	return &ve, nil
}

// GetByID devuelve (nil, nil) si la operación en espera no existe.
func (r *VentaEsperaRepo) GetByID(ctx context.Context, id int64) (*entity.VentaEspera, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, nombre_operacion, cliente_id, fecha_creacion, datos_carrito, notas
		FROM ventas_espera WHERE id = ?`, id)
	ve, err := scanVentaEspera(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get venta espera", err)
	}
	return ve, nil
}

// List lista las operaciones en espera, las más recientes primero.
func (r *VentaEsperaRepo) List(ctx context.Context) ([]*entity.VentaEspera, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, nombre_operacion, cliente_id, fecha_creacion, datos_carrito, notas
		FROM ventas_espera ORDER BY fecha_creacion DESC, id DESC`)
	if err != nil {
		return nil, mapErr("list ventas espera", err)
	}
	defer rows.Close()
	list := []*entity.VentaEspera{}
	for rows.Next() {
		ve, err := scanVentaEspera(rows)
		if err != nil {
			return nil, fmt.Errorf("list ventas espera: scan: %w", err)
		}
		list = append(list, ve)
	}
	return list, rows.Err()
}

// Delete borra una operación en espera (al retomarla o descartarla).
func (r *VentaEsperaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM ventas_espera WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete venta espera", err)
	}
	return requireRow(res, "delete venta espera")
}
