package repository

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// VentaRepository puerto de persistencia de ventas y sus líneas.
// Las ventas son inmutables una vez creadas: no hay Update ni Delete.
type VentaRepository interface {
	Create(ctx context.Context, v *entity.Venta) error
	CreateDetalle(ctx context.Context, d *entity.DetalleVenta) error
	GetByID(ctx context.Context, id int64) (*entity.Venta, error)
	Detalles(ctx context.Context, ventaID int64) ([]*entity.DetalleVenta, error)
}

// VentaEsperaRepository puerto de las operaciones en espera (carritos guardados).
type VentaEsperaRepository interface {
	Create(ctx context.Context, ve *entity.VentaEspera) error
	GetByID(ctx context.Context, id int64) (*entity.VentaEspera, error)
	List(ctx context.Context) ([]*entity.VentaEspera, error)
	Delete(ctx context.Context, id int64) error
}
