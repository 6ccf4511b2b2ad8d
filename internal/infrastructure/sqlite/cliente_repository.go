package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumnas = `id, nombre, apellido, rif, telefono, email, direccion, activo, fecha_registro`

// ClienteRepo implementación de ClienteRepository sobre SQLite.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente y asigna su ID.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO clientes (nombre, apellido, rif, telefono, email, direccion, activo, fecha_registro)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Nombre, nullStr(c.Apellido), nullStr(c.RIF), nullStr(c.Telefono),
		nullStr(c.Email), nullStr(c.Direccion), c.Activo, c.FechaRegistro)
	if err != nil {
		return mapErr("insert cliente", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert cliente: last insert id: %w", err)
	}
	c.ID = id
	return nil
}

func scanCliente(row rowScanner) (*entity.Cliente, error) {
	var c entity.Cliente
	var apellido, rif, telefono, email, direccion sql.NullString
	if err := row.Scan(&c.ID, &c.Nombre, &apellido, &rif, &telefono, &email,
		&direccion, &c.Activo, &c.FechaRegistro); err != nil {
		return nil, err
	}
	c.Apellido = strOrEmpty(apellido)
	c.RIF = strOrEmpty(rif)
	c.Telefono = strOrEmpty(telefono)
	c.Email = strOrEmpty(email)
	c.Direccion = strOrEmpty(direccion)
	return &c, nil
}

// GetByID devuelve (nil, nil) si el cliente no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+clienteColumnas+` FROM clientes WHERE id = ?`, id)
	c, err := scanCliente(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get cliente", err)
	}
	return c, nil
}

func (r *ClienteRepo) queryClientes(ctx context.Context, op, query string, args ...any) ([]*entity.Cliente, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()
	list := []*entity.Cliente{}
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// List lista los clientes activos ordenados por nombre.
func (r *ClienteRepo) List(ctx context.Context) ([]*entity.Cliente, error) {
	return r.queryClientes(ctx, "list clientes",
		`SELECT `+clienteColumnas+` FROM clientes WHERE activo = 1 ORDER BY nombre`)
}

// Search busca clientes activos por nombre, apellido, teléfono o RIF.
func (r *ClienteRepo) Search(ctx context.Context, termino string) ([]*entity.Cliente, error) {
	like := "%" + termino + "%"
	return r.queryClientes(ctx, "search clientes", `
		SELECT `+clienteColumnas+` FROM clientes
		WHERE activo = 1 AND (nombre LIKE ? OR apellido LIKE ? OR telefono LIKE ? OR rif LIKE ?)
		ORDER BY nombre`,
		like, like, like, like)
}

// Update actualiza los datos de contacto de un cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE clientes SET nombre = ?, apellido = ?, rif = ?, telefono = ?,
			email = ?, direccion = ?
		WHERE id = ?`,
		c.Nombre, nullStr(c.Apellido), nullStr(c.RIF), nullStr(c.Telefono),
		nullStr(c.Email), nullStr(c.Direccion), c.ID)
	if err != nil {
		return mapErr("update cliente", err)
	}
	return requireRow(res, "update cliente")
}

// SoftDelete desactiva un cliente; nunca se borra físicamente porque las
// ventas lo referencian.
func (r *ClienteRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE clientes SET activo = 0 WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete cliente", err)
	}
	return requireRow(res, "delete cliente")
}
