package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumnas = `id, nombre, contacto, telefono, email, direccion, rif, notas, activo, fecha_registro`

// ProveedorRepo implementación de ProveedorRepository sobre SQLite.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor y asigna su ID.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO proveedores (nombre, contacto, telefono, email, direccion, rif, notas, activo, fecha_registro)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Nombre, nullStr(p.Contacto), nullStr(p.Telefono), nullStr(p.Email),
		nullStr(p.Direccion), nullStr(p.RIF), nullStr(p.Notas), p.Activo, p.FechaRegistro)
	if err != nil {
		return mapErr("insert proveedor", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert proveedor: last insert id: %w", err)
	}
	p.ID = id
	return nil
}

func scanProveedor(row rowScanner) (*entity.Proveedor, error) {
	var p entity.Proveedor
	var contacto, telefono, email, direccion, rif, notas sql.NullString
	if err := row.Scan(&p.ID, &p.Nombre, &contacto, &telefono, &email,
		&direccion, &rif, &notas, &p.Activo, &p.FechaRegistro); err != nil {
		return nil, err
	}
	p.Contacto = strOrEmpty(contacto)
	p.Telefono = strOrEmpty(telefono)
	p.Email = strOrEmpty(email)
	p.Direccion = strOrEmpty(direccion)
	p.RIF = strOrEmpty(rif)
	p.Notas = strOrEmpty(notas)
	return &p, nil
}

// GetByID devuelve (nil, nil) si el proveedor no existe.
func (r *ProveedorRepo) GetByID(ctx context.Context, id int64) (*entity.Proveedor, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+proveedorColumnas+` FROM proveedores WHERE id = ?`, id)
	p, err := scanProveedor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get proveedor", err)
	}
	return p, nil
}

func (r *ProveedorRepo) queryProveedores(ctx context.Context, op, query string, args ...any) ([]*entity.Proveedor, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()
	list := []*entity.Proveedor{}
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista proveedores ordenados por nombre.
func (r *ProveedorRepo) List(ctx context.Context, incluirInactivos bool) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumnas + ` FROM proveedores`
	if !incluirInactivos {
		query += ` WHERE activo = 1`
	}
	query += ` ORDER BY nombre`
	return r.queryProveedores(ctx, "list proveedores", query)
}

// Search busca proveedores activos por nombre, contacto, teléfono o RIF.
func (r *ProveedorRepo) Search(ctx context.Context, termino string) ([]*entity.Proveedor, error) {
	like := "%" + termino + "%"
	return r.queryProveedores(ctx, "search proveedores", `
		SELECT `+proveedorColumnas+` FROM proveedores
		WHERE activo = 1 AND (nombre LIKE ? OR contacto LIKE ? OR telefono LIKE ? OR rif LIKE ?)
		ORDER BY nombre`,
		like, like, like, like)
}

// Update actualiza los datos de un proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE proveedores SET nombre = ?, contacto = ?, telefono = ?, email = ?,
			direccion = ?, rif = ?, notas = ?
		WHERE id = ?`,
		p.Nombre, nullStr(p.Contacto), nullStr(p.Telefono), nullStr(p.Email),
		nullStr(p.Direccion), nullStr(p.RIF), nullStr(p.Notas), p.ID)
	if err != nil {
		return mapErr("update proveedor", err)
	}
	return requireRow(res, "update proveedor")
}

// SoftDelete desactiva un proveedor (eliminación lógica).
func (r *ProveedorRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE proveedores SET activo = 0 WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete proveedor", err)
	}
	return requireRow(res, "delete proveedor")
}
