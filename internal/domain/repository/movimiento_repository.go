package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// MovimientoRepository puerto del libro de movimientos de inventario.
// Solo inserta y consulta: los movimientos nunca se editan ni se borran.
type MovimientoRepository interface {
	Create(ctx context.Context, m *entity.MovimientoInventario) error
	ListByProducto(ctx context.Context, productoID int64, limit, offset int) ([]*entity.MovimientoInventario, error)
	// SumByProducto devuelve la suma de todos los deltas de un producto,
	// que por invariante debe coincidir con su stock actual.
	SumByProducto(ctx context.Context, productoID int64) (decimal.Decimal, error)
}
