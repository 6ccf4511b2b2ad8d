package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// CategoriaUseCase CRUD de categorías.
type CategoriaUseCase struct {
	categorias repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(categorias repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{categorias: categorias}
}

// Crear da de alta una categoría; ErrDuplicate si el nombre ya existe.
func (uc *CategoriaUseCase) Crear(ctx context.Context, c *entity.Categoria) error {
	if c.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	c.Activo = true
	c.FechaCreacion = time.Now().UTC()
	return uc.categorias.Create(ctx, c)
}

// Get obtiene una categoría por ID; ErrNotFound si no existe.
func (uc *CategoriaUseCase) Get(ctx context.Context, id int64) (*entity.Categoria, error) {
	c, err := uc.categorias.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// Listar lista categorías.
func (uc *CategoriaUseCase) Listar(ctx context.Context, activasSolo bool) ([]*entity.Categoria, error) {
	return uc.categorias.List(ctx, activasSolo)
}

// Actualizar modifica nombre y descripción.
func (uc *CategoriaUseCase) Actualizar(ctx context.Context, c *entity.Categoria) error {
	if c.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	return uc.categorias.Update(ctx, c)
}

// Eliminar desactiva una categoría. Los productos que la referencian
// conservan su categoria_id.
func (uc *CategoriaUseCase) Eliminar(ctx context.Context, id int64) error {
	return uc.categorias.SoftDelete(ctx, id)
}
