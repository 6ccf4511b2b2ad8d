package repository

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// ClienteRepository puerto de persistencia de clientes.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id int64) (*entity.Cliente, error)
	List(ctx context.Context) ([]*entity.Cliente, error)
	Search(ctx context.Context, termino string) ([]*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	SoftDelete(ctx context.Context, id int64) error
}
