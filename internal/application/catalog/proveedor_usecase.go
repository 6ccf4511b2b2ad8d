package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// ProveedorUseCase CRUD de proveedores.
type ProveedorUseCase struct {
	proveedores repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(proveedores repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{proveedores: proveedores}
}

// Crear da de alta un proveedor.
func (uc *ProveedorUseCase) Crear(ctx context.Context, p *entity.Proveedor) error {
	if p.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	p.Activo = true
	p.FechaRegistro = time.Now().UTC()
	return uc.proveedores.Create(ctx, p)
}

// Get obtiene un proveedor por ID; ErrNotFound si no existe.
func (uc *ProveedorUseCase) Get(ctx context.Context, id int64) (*entity.Proveedor, error) {
	p, err := uc.proveedores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Listar lista proveedores.
func (uc *ProveedorUseCase) Listar(ctx context.Context, incluirInactivos bool) ([]*entity.Proveedor, error) {
	return uc.proveedores.List(ctx, incluirInactivos)
}

// Buscar busca proveedores por nombre, contacto, teléfono o RIF.
func (uc *ProveedorUseCase) Buscar(ctx context.Context, termino string) ([]*entity.Proveedor, error) {
	return uc.proveedores.Search(ctx, termino)
}

// Actualizar modifica los datos de un proveedor.
func (uc *ProveedorUseCase) Actualizar(ctx context.Context, p *entity.Proveedor) error {
	if p.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	return uc.proveedores.Update(ctx, p)
}

// Eliminar desactiva un proveedor; sus compras permanecen.
func (uc *ProveedorUseCase) Eliminar(ctx context.Context, id int64) error {
	return uc.proveedores.SoftDelete(ctx, id)
}
