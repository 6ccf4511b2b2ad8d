package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/inventory"
	"github.com/acaicedo/puntoventa/internal/application/ports"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// ProductoUseCase CRUD del catálogo de productos. El stock no se edita por
// aquí: nace con un movimiento "Stock inicial" y de ahí en adelante solo lo
// mueven ventas, compras y ajustes.
type ProductoUseCase struct {
	tx        ports.TxRunner
	productos repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(tx ports.TxRunner, productos repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{tx: tx, productos: productos}
}

func validarProducto(p *entity.Producto) error {
	if p.Nombre == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	if p.PrecioVenta.IsNegative() {
		return fmt.Errorf("precio de venta negativo: %w", domain.ErrInvalidInput)
	}
	if p.StockMinimo.IsNegative() {
		return fmt.Errorf("stock mínimo negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Crear da de alta un producto. Si stockInicial es positivo, el alta y su
// movimiento "Stock inicial" quedan en la misma transacción: nunca existe
// un producto con stock sin asiento en el libro.
func (uc *ProductoUseCase) Crear(ctx context.Context, p *entity.Producto, stockInicial decimal.Decimal) error {
	if err := validarProducto(p); err != nil {
		return err
	}
	if stockInicial.IsNegative() {
		return fmt.Errorf("stock inicial negativo: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	p.Activo = true
	p.StockActual = decimal.Zero
	p.FechaCreacion = now
	p.FechaModificacion = now
	if p.TasaCamb.IsZero() {
		p.TasaCamb = entity.TasaPorDefecto
	}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Productos.Create(ctx, p); err != nil {
			return err
		}
		if !stockInicial.IsPositive() {
			return nil
		}
		nueva, err := inventory.Aplicar(ctx, r, inventory.Movimiento{
			ProductoID: p.ID,
			Tipo:       entity.MovimientoEntrada,
			Delta:      stockInicial,
			Motivo:     "Stock inicial",
			LoteID:     uuid.New().String(),
			Fecha:      now,
		})
		if err != nil {
			return err
		}
		p.StockActual = nueva
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int64("producto_id", p.ID).
		Str("nombre", p.Nombre).
		Str("stock_inicial", stockInicial.String()).
		Msg("producto creado")
	return nil
}

// Get obtiene un producto por ID; ErrNotFound si no existe.
func (uc *ProductoUseCase) Get(ctx context.Context, id int64) (*entity.Producto, error) {
	p, err := uc.productos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// PorCodigo obtiene un producto activo por código de barras (lectura del
// escáner); ErrNotFound si no existe.
func (uc *ProductoUseCase) PorCodigo(ctx context.Context, codigo string) (*entity.Producto, error) {
	p, err := uc.productos.GetByCodigoBarras(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("código %q: %w", codigo, domain.ErrNotFound)
	}
	return p, nil
}

// Actualizar modifica los datos del producto. Ignora cualquier cambio de
// stock que venga en p: el stock solo lo mueve el libro.
func (uc *ProductoUseCase) Actualizar(ctx context.Context, p *entity.Producto) error {
	if err := validarProducto(p); err != nil {
		return err
	}
	p.FechaModificacion = time.Now().UTC()
	return uc.productos.Update(ctx, p)
}

// Eliminar desactiva un producto. Su historial de movimientos permanece.
func (uc *ProductoUseCase) Eliminar(ctx context.Context, id int64) error {
	return uc.productos.SoftDelete(ctx, id, time.Now().UTC())
}

// Listar lista el catálogo, opcionalmente por categoría.
func (uc *ProductoUseCase) Listar(ctx context.Context, categoriaID *int64, activosSolo bool) ([]*entity.Producto, error) {
	return uc.productos.List(ctx, categoriaID, activosSolo)
}

// Buscar busca por código de barras, nombre o descripción.
func (uc *ProductoUseCase) Buscar(ctx context.Context, termino string) ([]*entity.Producto, error) {
	return uc.productos.Search(ctx, termino)
}

// BajoStock lista los productos en o bajo su stock mínimo.
func (uc *ProductoUseCase) BajoStock(ctx context.Context) ([]*entity.Producto, error) {
	return uc.productos.LowStock(ctx)
}
