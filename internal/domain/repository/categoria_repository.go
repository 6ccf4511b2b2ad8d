package repository

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// CategoriaRepository puerto de persistencia de categorías.
type CategoriaRepository interface {
	Create(ctx context.Context, c *entity.Categoria) error
	GetByID(ctx context.Context, id int64) (*entity.Categoria, error)
	List(ctx context.Context, activasSolo bool) ([]*entity.Categoria, error)
	Update(ctx context.Context, c *entity.Categoria) error
	SoftDelete(ctx context.Context, id int64) error
}
