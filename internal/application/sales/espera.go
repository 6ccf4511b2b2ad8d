package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// EsperaUseCase carritos en espera: la caja aparta una operación para
// atender otra y la retoma después. El carrito se serializa como JSON.
type EsperaUseCase struct {
	espera repository.VentaEsperaRepository
}

// NewEsperaUseCase construye el caso de uso.
func NewEsperaUseCase(espera repository.VentaEsperaRepository) *EsperaUseCase {
	return &EsperaUseCase{espera: espera}
}

// Guardar aparta un carrito bajo un nombre de operación.
func (uc *EsperaUseCase) Guardar(ctx context.Context, nombre string, clienteID *int64, lineas []LineaCarrito, notas string) (*entity.VentaEspera, error) {
	if nombre == "" {
		return nil, fmt.Errorf("nombre de operación vacío: %w", domain.ErrInvalidInput)
	}
	if err := validarLineas(lineas); err != nil {
		return nil, err
	}
	datos, err := json.Marshal(lineas)
	if err != nil {
		return nil, fmt.Errorf("serializar carrito: %w", err)
	}
	ve := &entity.VentaEspera{
		NombreOperacion: nombre,
		ClienteID:       clienteID,
		FechaCreacion:   time.Now().UTC(),
		DatosCarrito:    datos,
		Notas:           notas,
	}
	if err := uc.espera.Create(ctx, ve); err != nil {
		return nil, err
	}
	return ve, nil
}

// Listar lista las operaciones en espera, las más recientes primero.
func (uc *EsperaUseCase) Listar(ctx context.Context) ([]*entity.VentaEspera, error) {
	return uc.espera.List(ctx)
}

// Retomar devuelve el carrito apartado y borra la operación en espera.
// Las líneas vuelven a la caja; la venta se confirma aparte con CrearVenta.
func (uc *EsperaUseCase) Retomar(ctx context.Context, id int64) (*entity.VentaEspera, []LineaCarrito, error) {
	ve, err := uc.espera.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ve == nil {
		return nil, nil, fmt.Errorf("operación en espera %d: %w", id, domain.ErrNotFound)
	}
	var lineas []LineaCarrito
	if err := json.Unmarshal(ve.DatosCarrito, &lineas); err != nil {
		return nil, nil, fmt.Errorf("carrito guardado corrupto: %w", err)
	}
	if err := uc.espera.Delete(ctx, id); err != nil {
		return nil, nil, err
	}
	return ve, lineas, nil
}

// Descartar borra una operación en espera sin retomarla.
func (uc *EsperaUseCase) Descartar(ctx context.Context, id int64) error {
	return uc.espera.Delete(ctx, id)
}
