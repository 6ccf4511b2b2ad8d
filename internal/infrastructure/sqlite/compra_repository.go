package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación de CompraRepository sobre SQLite. Las compras
// confirmadas son inmutables: solo inserta y lee.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

// Create inserta la cabecera de una compra y asigna su ID.
func (r *CompraRepo) Create(ctx context.Context, c *entity.Compra) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO compras (proveedor_id, documento, fecha_compra, tasa_cambio, subtotal_ves, total_ves, estado, notas)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ProveedorID, nullStr(c.Documento), c.FechaCompra, c.TasaCambio,
		c.SubtotalVES, c.TotalVES, c.Estado, nullStr(c.Notas))
	if err != nil {
		return mapErr("insert compra", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert compra: last insert id: %w", err)
	}
	c.ID = id
	return nil
}

// CreateDetalle inserta una línea de compra y asigna su ID.
func (r *CompraRepo) CreateDetalle(ctx context.Context, d *entity.DetalleCompra) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO detalle_compras (compra_id, producto_id, cantidad, precio_unitario_usd, precio_unitario_ves, subtotal_ves)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.CompraID, d.ProductoID, d.Cantidad, d.PrecioUnitarioUSD,
		d.PrecioUnitarioVES, d.SubtotalVES)
	if err != nil {
		return mapErr("insert detalle compra", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert detalle compra: last insert id: %w", err)
	}
	d.ID = id
	return nil
}

// GetByID devuelve (nil, nil) si la compra no existe.
func (r *CompraRepo) GetByID(ctx context.Context, id int64) (*entity.Compra, error) {
	var c entity.Compra
	var documento, notas sql.NullString
	err := r.q.QueryRowContext(ctx, `
		SELECT id, proveedor_id, documento, fecha_compra, tasa_cambio, subtotal_ves, total_ves, estado, notas
		FROM compras WHERE id = ?`, id).Scan(
		&c.ID, &c.ProveedorID, &documento, &c.FechaCompra, &c.TasaCambio,
		&c.SubtotalVES, &c.TotalVES, &c.Estado, &notas)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get compra", err)
	}
	c.Documento = strOrEmpty(documento)
	c.Notas = strOrEmpty(notas)
	return &c, nil
}

// List lista las compras con los datos del proveedor, las más recientes primero.
func (r *CompraRepo) List(ctx context.Context) ([]*entity.CompraResumen, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT c.id, c.proveedor_id, c.documento, c.fecha_compra, c.tasa_cambio,
			c.subtotal_ves, c.total_ves, c.estado, c.notas,
			p.nombre, p.rif, p.telefono
		FROM compras c
		JOIN proveedores p ON p.id = c.proveedor_id
		ORDER BY c.fecha_compra DESC, c.id DESC`)
	if err != nil {
		return nil, mapErr("list compras", err)
	}
	defer rows.Close()
	list := []*entity.CompraResumen{}
	for rows.Next() {
		var cr entity.CompraResumen
		var documento, notas, rif, telefono sql.NullString
		if err := rows.Scan(&cr.ID, &cr.ProveedorID, &documento, &cr.FechaCompra,
			&cr.TasaCambio, &cr.SubtotalVES, &cr.TotalVES, &cr.Estado, &notas,
			&cr.ProveedorNombre, &rif, &telefono); err != nil {
			return nil, fmt.Errorf("list compras: scan: %w", err)
		}
		cr.Documento = strOrEmpty(documento)
		cr.Notas = strOrEmpty(notas)
		cr.ProveedorRIF = strOrEmpty(rif)
		cr.ProveedorTelefono = strOrEmpty(telefono)
		list = append(list, &cr)
	}
	return list, rows.Err()
}

// Detalle lista las líneas de una compra con el nombre del producto.
func (r *CompraRepo) Detalle(ctx context.Context, compraID int64) ([]*entity.DetalleCompraResumen, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT d.id, d.compra_id, d.producto_id, d.cantidad, d.precio_unitario_usd,
			d.precio_unitario_ves, d.subtotal_ves, p.nombre
		FROM detalle_compras d
		JOIN productos p ON p.id = d.producto_id
		WHERE d.compra_id = ?
		ORDER BY d.id`, compraID)
	if err != nil {
		return nil, mapErr("list detalle compra", err)
	}
	defer rows.Close()
	list := []*entity.DetalleCompraResumen{}
	for rows.Next() {
		var dr entity.DetalleCompraResumen
		if err := rows.Scan(&dr.ID, &dr.CompraID, &dr.ProductoID, &dr.Cantidad,
			&dr.PrecioUnitarioUSD, &dr.PrecioUnitarioVES, &dr.SubtotalVES,
			&dr.NombreProducto); err != nil {
			return nil, fmt.Errorf("list detalle compra: scan: %w", err)
		}
		list = append(list, &dr)
	}
	return list, rows.Err()
}
