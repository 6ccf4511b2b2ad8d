package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// ProductoRepository es el puerto de persistencia del catálogo de productos.
// Los métodos Get* devuelven (nil, nil) cuando la fila no existe; los de
// escritura devuelven domain.ErrNotFound.
//
// El stock solo se escribe vía UpdateStock, y únicamente desde el libro de
// inventario y los motores de venta/compra dentro de su transacción.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id int64) (*entity.Producto, error)
	GetByCodigoBarras(ctx context.Context, codigo string) (*entity.Producto, error)
	List(ctx context.Context, categoriaID *int64, activosSolo bool) ([]*entity.Producto, error)
	Search(ctx context.Context, termino string) ([]*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	SoftDelete(ctx context.Context, id int64, ahora time.Time) error

	GetStock(ctx context.Context, id int64) (decimal.Decimal, error)
	UpdateStock(ctx context.Context, id int64, stock decimal.Decimal, ahora time.Time) error
	UpdateCostoCompra(ctx context.Context, id int64, costoUSD, costoVES, tasa decimal.Decimal) error

	// RecomputarPrecios deriva de nuevo los precios VES de todos los
	// productos con precios base USD y estampa la tasa usada.
	// Devuelve cuántos productos fueron actualizados.
	RecomputarPrecios(ctx context.Context, tasa decimal.Decimal) (int64, error)

	LowStock(ctx context.Context) ([]*entity.Producto, error)
}
