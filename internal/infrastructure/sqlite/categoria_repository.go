package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación de CategoriaRepository sobre SQLite.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría; ErrDuplicate si el nombre ya existe.
func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO categorias (nombre, descripcion, activo, fecha_creacion)
		VALUES (?, ?, ?, ?)`,
		c.Nombre, nullStr(c.Descripcion), c.Activo, c.FechaCreacion)
	if err != nil {
		return mapErr("insert categoria", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert categoria: last insert id: %w", err)
	}
	c.ID = id
	return nil
}

func scanCategoria(row rowScanner) (*entity.Categoria, error) {
	var c entity.Categoria
	var descripcion sql.NullString
	if err := row.Scan(&c.ID, &c.Nombre, &descripcion, &c.Activo, &c.FechaCreacion); err != nil {
		return nil, err
	}
	c.Descripcion = strOrEmpty(descripcion)
	return &c, nil
}

// GetByID devuelve (nil, nil) si la categoría no existe.
func (r *CategoriaRepo) GetByID(ctx context.Context, id int64) (*entity.Categoria, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, nombre, descripcion, activo, fecha_creacion FROM categorias WHERE id = ?`, id)
	c, err := scanCategoria(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get categoria", err)
	}
	return c, nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoriaRepo) List(ctx context.Context, activasSolo bool) ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, activo, fecha_creacion FROM categorias`
	if activasSolo {
		query += ` WHERE activo = 1`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapErr("list categorias", err)
	}
	defer rows.Close()
	list := []*entity.Categoria{}
	for rows.Next() {
		c, err := scanCategoria(rows)
		if err != nil {
			return nil, fmt.Errorf("list categorias: scan: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *CategoriaRepo) Update(ctx context.Context, c *entity.Categoria) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE categorias SET nombre = ?, descripcion = ? WHERE id = ?`,
		c.Nombre, nullStr(c.Descripcion), c.ID)
	if err != nil {
		return mapErr("update categoria", err)
	}
	return requireRow(res, "update categoria")
}

// SoftDelete desactiva una categoría.
func (r *CategoriaRepo) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE categorias SET activo = 0 WHERE id = ?`, id)
	if err != nil {
		return mapErr("delete categoria", err)
	}
	return requireRow(res, "delete categoria")
}
