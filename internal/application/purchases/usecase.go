package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/currency"
	"github.com/acaicedo/puntoventa/internal/application/inventory"
	"github.com/acaicedo/puntoventa/internal/application/ports"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// LineaCompra es una línea de factura de proveedor. El costo se declara
// en USD; el costo VES se deriva con la tasa de la compra.
type LineaCompra struct {
	ProductoID        int64
	Cantidad          decimal.Decimal
	PrecioUnitarioUSD decimal.Decimal
}

// CompraEntrada es el insumo completo de una compra. FechaCompra permite
// registrar facturas con fecha anterior; en cero se usa la del registro.
type CompraEntrada struct {
	ProveedorID int64
	Documento   string
	FechaCompra time.Time
	TasaCambio  decimal.Decimal // cero: usar la tasa vigente
	Lineas      []LineaCompra
	Notas       string
	Usuario     string
}

// UseCase motor de compras: registra facturas de proveedor, carga el
// inventario y actualiza los costos del catálogo.
type UseCase struct {
	tx          ports.TxRunner
	compras     repository.CompraRepository
	proveedores repository.ProveedorRepository
	moneda      *currency.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, compras repository.CompraRepository, proveedores repository.ProveedorRepository, moneda *currency.UseCase) *UseCase {
	return &UseCase{tx: tx, compras: compras, proveedores: proveedores, moneda: moneda}
}

// CrearCompra registra una factura: cabecera, líneas, un movimiento de
// entrada por línea y la actualización de costos del producto, todo o
// nada. La tasa de la compra queda estampada en la cabecera y en cada
// costo derivado.
func (uc *UseCase) CrearCompra(ctx context.Context, in CompraEntrada) (*entity.Compra, error) {
	if len(in.Lineas) == 0 {
		return nil, fmt.Errorf("compra sin líneas: %w", domain.ErrInvalidInput)
	}
	for i, l := range in.Lineas {
		if l.ProductoID <= 0 || !l.Cantidad.IsPositive() || l.PrecioUnitarioUSD.IsNegative() {
			return nil, fmt.Errorf("línea %d: %w", i+1, domain.ErrInvalidInput)
		}
	}

	proveedor, err := uc.proveedores.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, fmt.Errorf("proveedor %d: %w", in.ProveedorID, domain.ErrNotFound)
	}

	tasa := in.TasaCambio
	if tasa.IsZero() {
		tasa, err = uc.moneda.Tasa(ctx)
		if err != nil {
			return nil, err
		}
	}
	if !tasa.IsPositive() {
		return nil, fmt.Errorf("tasa %s: %w", tasa, domain.ErrInvalidInput)
	}

	type lineaCalc struct {
		LineaCompra
		precioVES   decimal.Decimal
		subtotalVES decimal.Decimal
	}
	calc := make([]lineaCalc, 0, len(in.Lineas))
	subtotal := decimal.Zero
	for _, l := range in.Lineas {
		precioVES := currency.ABolivares(l.PrecioUnitarioUSD, tasa)
		sub := precioVES.Mul(l.Cantidad).Round(2)
		calc = append(calc, lineaCalc{LineaCompra: l, precioVES: precioVES, subtotalVES: sub})
		subtotal = subtotal.Add(sub)
	}

	now := time.Now().UTC()
	fechaCompra := in.FechaCompra
	if fechaCompra.IsZero() {
		fechaCompra = now
	}
	loteID := uuid.New().String()
	compra := &entity.Compra{
		ProveedorID: in.ProveedorID,
		Documento:   in.Documento,
		FechaCompra: fechaCompra,
		TasaCambio:  tasa,
		SubtotalVES: subtotal,
		TotalVES:    subtotal,
		Estado:      entity.CompraPendiente,
		Notas:       in.Notas,
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Compras.Create(ctx, compra); err != nil {
			return err
		}
		motivo := fmt.Sprintf("Compra #%d", compra.ID)
		for _, l := range calc {
			// El asiento va primero: su lectura de stock responde
			// ErrNotFound si el producto no existe, antes de que el
			// detalle tropiece con la clave foránea.
			if _, err := inventory.Aplicar(ctx, r, inventory.Movimiento{
				ProductoID: l.ProductoID,
				Tipo:       entity.MovimientoEntrada,
				Delta:      l.Cantidad,
				Motivo:     motivo,
				Usuario:    in.Usuario,
				LoteID:     loteID,
				Fecha:      now,
			}); err != nil {
				return err
			}
			det := &entity.DetalleCompra{
				CompraID:          compra.ID,
				ProductoID:        l.ProductoID,
				Cantidad:          l.Cantidad,
				PrecioUnitarioUSD: l.PrecioUnitarioUSD,
				PrecioUnitarioVES: l.precioVES,
				SubtotalVES:       l.subtotalVES,
			}
			if err := r.Compras.CreateDetalle(ctx, det); err != nil {
				return err
			}
			if err := r.Productos.UpdateCostoCompra(ctx, l.ProductoID, l.PrecioUnitarioUSD, l.precioVES, tasa); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("compra_id", compra.ID).
		Int64("proveedor_id", in.ProveedorID).
		Str("total_ves", compra.TotalVES.String()).
		Msg("compra registrada")
	return compra, nil
}

// Listar lista las compras con los datos del proveedor.
func (uc *UseCase) Listar(ctx context.Context) ([]*entity.CompraResumen, error) {
	return uc.compras.List(ctx)
}

// Detalle obtiene una compra con sus líneas; ErrNotFound si no existe.
func (uc *UseCase) Detalle(ctx context.Context, id int64) (*entity.Compra, []*entity.DetalleCompraResumen, error) {
	compra, err := uc.compras.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if compra == nil {
		return nil, nil, fmt.Errorf("compra %d: %w", id, domain.ErrNotFound)
	}
	detalles, err := uc.compras.Detalle(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return compra, detalles, nil
}
