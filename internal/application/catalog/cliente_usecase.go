package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// ClienteUseCase CRUD de clientes.
type ClienteUseCase struct {
	clientes repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(clientes repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{clientes: clientes}
}

// Crear da de alta un cliente.
func (uc *ClienteUseCase) Crear(ctx context.Context, c *entity.Cliente) error {
	if c.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	c.Activo = true
	c.FechaRegistro = time.Now().UTC()
	return uc.clientes.Create(ctx, c)
}

// Get obtiene un cliente por ID; ErrNotFound si no existe.
func (uc *ClienteUseCase) Get(ctx context.Context, id int64) (*entity.Cliente, error) {
	c, err := uc.clientes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// Listar lista los clientes activos.
func (uc *ClienteUseCase) Listar(ctx context.Context) ([]*entity.Cliente, error) {
	return uc.clientes.List(ctx)
}

// Buscar busca clientes por nombre, apellido, teléfono o RIF.
func (uc *ClienteUseCase) Buscar(ctx context.Context, termino string) ([]*entity.Cliente, error) {
	return uc.clientes.Search(ctx, termino)
}

// Actualizar modifica los datos de contacto.
func (uc *ClienteUseCase) Actualizar(ctx context.Context, c *entity.Cliente) error {
	if c.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	return uc.clientes.Update(ctx, c)
}

// Eliminar desactiva un cliente; su historial de ventas permanece.
func (uc *ClienteUseCase) Eliminar(ctx context.Context, id int64) error {
	return uc.clientes.SoftDelete(ctx, id)
}
