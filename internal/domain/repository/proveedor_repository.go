package repository

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// ProveedorRepository puerto de persistencia de proveedores.
type ProveedorRepository interface {
	Create(ctx context.Context, p *entity.Proveedor) error
	GetByID(ctx context.Context, id int64) (*entity.Proveedor, error)
	List(ctx context.Context, incluirInactivos bool) ([]*entity.Proveedor, error)
	Search(ctx context.Context, termino string) ([]*entity.Proveedor, error)
	Update(ctx context.Context, p *entity.Proveedor) error
	SoftDelete(ctx context.Context, id int64) error
}
