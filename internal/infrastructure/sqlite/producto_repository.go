package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumnas = `id, codigo_barras, nombre, descripcion, categoria_id,
	precio_venta, precio_compra, precio_venta_usd, precio_compra_usd,
	stock_actual, stock_minimo, tasa_camb, activo, vende_al_mayor,
	unidades_por_bulto, fecha_creacion, fecha_modificacion`

// ProductoRepo implementación de ProductoRepository sobre SQLite (usable
// con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID. El stock inicial se
// registra aparte, vía el libro de movimientos.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO productos (codigo_barras, nombre, descripcion, categoria_id,
			precio_venta, precio_compra, precio_venta_usd, precio_compra_usd,
			stock_actual, stock_minimo, tasa_camb, activo, vende_al_mayor,
			unidades_por_bulto, fecha_creacion, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullStr(p.CodigoBarras), p.Nombre, nullStr(p.Descripcion), nullInt64(p.CategoriaID),
		p.PrecioVenta, p.PrecioCompra, p.PrecioVentaUSD, p.PrecioCompraUSD,
		p.StockActual, p.StockMinimo, p.TasaCamb, p.Activo, p.VendeAlMayor,
		nullInt64(p.UnidadesPorBulto), p.FechaCreacion, p.FechaModificacion,
	)
	if err != nil {
		return mapErr("insert producto", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert producto: last insert id: %w", err)
	}
	p.ID = id
	return nil
}

func scanProducto(row rowScanner) (*entity.Producto, error) {
	var p entity.Producto
	var codigo, descripcion sql.NullString
	var categoriaID, unidades sql.NullInt64
	if err := row.Scan(
		&p.ID, &codigo, &p.Nombre, &descripcion, &categoriaID,
		&p.PrecioVenta, &p.PrecioCompra, &p.PrecioVentaUSD, &p.PrecioCompraUSD,
		&p.StockActual, &p.StockMinimo, &p.TasaCamb, &p.Activo, &p.VendeAlMayor,
		&unidades, &p.FechaCreacion, &p.FechaModificacion,
	); err != nil {
		return nil, err
	}
	p.CodigoBarras = strOrEmpty(codigo)
	p.Descripcion = strOrEmpty(descripcion)
	p.CategoriaID = int64Ptr(categoriaID)
	p.UnidadesPorBulto = int64Ptr(unidades)
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductoRepo) GetByID(ctx context.Context, id int64) (*entity.Producto, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productoColumnas+` FROM productos WHERE id = ?`, id)
	p, err := scanProducto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get producto", err)
	}
	return p, nil
}

// GetByCodigoBarras obtiene un producto activo por su código de barras.
func (r *ProductoRepo) GetByCodigoBarras(ctx context.Context, codigo string) (*entity.Producto, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productoColumnas+` FROM productos WHERE codigo_barras = ? AND activo = 1`, codigo)
	p, err := scanProducto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapErr("get producto por código", err)
	}
	return p, nil
}

func (r *ProductoRepo) queryProductos(ctx context.Context, op, query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()
	list := []*entity.Producto{}
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista productos, opcionalmente por categoría y solo activos.
func (r *ProductoRepo) List(ctx context.Context, categoriaID *int64, activosSolo bool) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumnas + ` FROM productos WHERE 1=1`
	var args []any
	if activosSolo {
		query += ` AND activo = 1`
	}
	if categoriaID != nil {
		query += ` AND categoria_id = ?`
		args = append(args, *categoriaID)
	}
	query += ` ORDER BY nombre`
	return r.queryProductos(ctx, "list productos", query, args...)
}

// Search busca productos activos. Si el término coincide con un código de
// barras, la rama de código manda: coincidencia exacta primero y luego las
// parciales de código. Si no, busca por nombre, descripción y código,
// rankeando nombre > descripción > código, con empates por nombre.
// Un término vacío devuelve lista vacía, nunca "todos".
func (r *ProductoRepo) Search(ctx context.Context, termino string) ([]*entity.Producto, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return []*entity.Producto{}, nil
	}

	like := "%" + termino + "%"
	porCodigo, err := r.queryProductos(ctx, "search productos por código", `
		SELECT `+productoColumnas+` FROM productos
		WHERE activo = 1 AND (codigo_barras = ? OR codigo_barras LIKE ?)
		ORDER BY CASE WHEN codigo_barras = ? THEN 1 ELSE 2 END, nombre`,
		termino, like, termino,
	)
	if err != nil {
		return nil, err
	}
	if len(porCodigo) > 0 {
		return porCodigo, nil
	}

	return r.queryProductos(ctx, "search productos", `
		SELECT `+productoColumnas+` FROM productos
		WHERE activo = 1 AND (nombre LIKE ? OR descripcion LIKE ? OR codigo_barras LIKE ?)
		ORDER BY CASE
			WHEN nombre LIKE ? THEN 1
			WHEN descripcion LIKE ? THEN 2
			ELSE 3
		END, nombre`,
		like, like, like, like, like,
	)
}

// Update actualiza un producto existente. No toca stock_actual: el stock
// cambia solo vía el libro de movimientos.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE productos SET codigo_barras = ?, nombre = ?, descripcion = ?,
			categoria_id = ?, precio_venta = ?, precio_compra = ?,
			precio_venta_usd = ?, precio_compra_usd = ?, stock_minimo = ?,
			tasa_camb = ?, vende_al_mayor = ?, unidades_por_bulto = ?,
			fecha_modificacion = ?
		WHERE id = ?`,
		nullStr(p.CodigoBarras), p.Nombre, nullStr(p.Descripcion), nullInt64(p.CategoriaID),
		p.PrecioVenta, p.PrecioCompra, p.PrecioVentaUSD, p.PrecioCompraUSD,
		p.StockMinimo, p.TasaCamb, p.VendeAlMayor, nullInt64(p.UnidadesPorBulto),
		p.FechaModificacion, p.ID,
	)
	if err != nil {
		return mapErr("update producto", err)
	}
	return requireRow(res, "update producto")
}

// SoftDelete desactiva un producto (eliminación lógica).
func (r *ProductoRepo) SoftDelete(ctx context.Context, id int64, ahora time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE productos SET activo = 0, fecha_modificacion = ? WHERE id = ?`, ahora, id)
	if err != nil {
		return mapErr("delete producto", err)
	}
	return requireRow(res, "delete producto")
}

// GetStock lee el stock actual. A diferencia de GetByID, devuelve
// domain.ErrNotFound si el producto no existe: es la lectura que hace el
// libro de movimientos dentro de una transacción.
func (r *ProductoRepo) GetStock(ctx context.Context, id int64) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.q.QueryRowContext(ctx,
		`SELECT stock_actual FROM productos WHERE id = ?`, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("get stock producto %d: %w", id, domain.ErrNotFound)
		}
		return decimal.Zero, mapErr("get stock", err)
	}
	return stock, nil
}

// UpdateStock persiste el stock resultante de un movimiento.
func (r *ProductoRepo) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal, ahora time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE productos SET stock_actual = ?, fecha_modificacion = ? WHERE id = ?`,
		stock, ahora, id)
	if err != nil {
		return mapErr("update stock", err)
	}
	return requireRow(res, "update stock")
}

// UpdateCostoCompra actualiza el par de costos de compra y la tasa con la
// que se derivó el costo VES (la usa el motor de compras).
func (r *ProductoRepo) UpdateCostoCompra(ctx context.Context, id int64, costoUSD, costoVES, tasa decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE productos SET precio_compra_usd = ?, precio_compra = ?, tasa_camb = ?
		WHERE id = ?`,
		costoUSD, costoVES, tasa, id)
	if err != nil {
		return mapErr("update costo compra", err)
	}
	return requireRow(res, "update costo compra")
}

// RecomputarPrecios deriva de nuevo los precios VES desde los precios base
// USD con la tasa dada, redondeando a 2 decimales, y estampa tasa_camb.
// Solo toca productos con ambos precios base presentes.
func (r *ProductoRepo) RecomputarPrecios(ctx context.Context, tasa decimal.Decimal) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE productos
		SET precio_venta = ROUND(precio_venta_usd * ?, 2),
		    precio_compra = ROUND(precio_compra_usd * ?, 2),
		    tasa_camb = ?
		WHERE precio_venta_usd IS NOT NULL AND precio_compra_usd IS NOT NULL`,
		tasa, tasa, tasa)
	if err != nil {
		return 0, mapErr("recomputar precios", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("recomputar precios: rows affected: %w", err)
	}
	return n, nil
}

// LowStock lista los productos activos en o bajo su stock mínimo.
func (r *ProductoRepo) LowStock(ctx context.Context) ([]*entity.Producto, error) {
	return r.queryProductos(ctx, "list bajo stock", `
		SELECT `+productoColumnas+` FROM productos
		WHERE activo = 1 AND stock_actual <= stock_minimo
		ORDER BY nombre`)
}

// requireRow convierte "cero filas afectadas" en domain.ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
