package repository

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// CompraRepository puerto de persistencia de compras y sus líneas.
// Al igual que las ventas, las compras confirmadas son inmutables.
type CompraRepository interface {
	Create(ctx context.Context, c *entity.Compra) error
	CreateDetalle(ctx context.Context, d *entity.DetalleCompra) error
	GetByID(ctx context.Context, id int64) (*entity.Compra, error)
	List(ctx context.Context) ([]*entity.CompraResumen, error)
	Detalle(ctx context.Context, compraID int64) ([]*entity.DetalleCompraResumen, error)
}
