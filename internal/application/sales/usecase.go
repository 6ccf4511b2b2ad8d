package sales

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

// LineaCarrito es una línea del carrito por confirmar. PrecioUnitario es
// el precio acordado en caja, no una referencia al catálogo.
type LineaCarrito struct {
	ProductoID     int64           `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// PagoEntrada es un pago declarado al confirmar o después. TasaCambio
// permite estampar una tasa histórica pactada con el cliente; en cero se
// usa la vigente al momento del registro.
type PagoEntrada struct {
	TipoPago        string
	Monto           decimal.Decimal
	Moneda          string
	TasaCambio      decimal.Decimal
	NumeroDocumento string
	Detalles        string
}

// VentaEntrada es el insumo completo de una venta.
type VentaEntrada struct {
	ClienteID  *int64
	Lineas     []LineaCarrito
	Impuesto   decimal.Decimal
	Descuento  decimal.Decimal
	MetodoPago string
	Notas      string
	Pagos      []PagoEntrada
	Usuario    string
}

// UseCase motor de ventas: confirma carritos de forma transaccional y
// registra pagos multimoneda.
type UseCase struct {
	tx     ports.TxRunner
	ventas repository.VentaRepository
	pagos  repository.PagoRepository
	moneda *currency.UseCase
}

// NewUseCase construye el caso de uso. ventas y pagos van atados al pool
// para las lecturas; toda escritura pasa por tx.
func NewUseCase(tx ports.TxRunner, ventas repository.VentaRepository, pagos repository.PagoRepository, moneda *currency.UseCase) *UseCase {
	return &UseCase{tx: tx, ventas: ventas, pagos: pagos, moneda: moneda}
}

func validarLineas(lineas []LineaCarrito) error {
	if len(lineas) == 0 {
		return domain.ErrEmptyCart
	}
	for i, l := range lineas {
		if l.ProductoID <= 0 || !l.Cantidad.IsPositive() || l.PrecioUnitario.IsNegative() {
			return fmt.Errorf("línea %d: %w", i+1, domain.ErrInvalidInput)
		}
	}
	return nil
}

func equivalenteUSD(monto, tasa decimal.Decimal, moneda string) decimal.Decimal {
	if moneda == entity.MonedaUSD {
		return monto
	}
	return currency.ADolar(monto, tasa)
}

// CrearVenta confirma un carrito: cabecera, líneas, un movimiento de
// salida por línea y los pagos declarados, todo o nada. El descuento del
// movimiento se hace contra el stock que la transacción ve con el lock
// tomado, así dos cajas vendiendo lo mismo se serializan.
//
// No rechaza ventas que dejen stock negativo: la caja no se detiene por
// un inventario mal registrado. El faltante queda a la vista en el libro
// y en bajo stock.
func (uc *UseCase) CrearVenta(ctx context.Context, in VentaEntrada) (*entity.Venta, error) {
	if err := validarLineas(in.Lineas); err != nil {
		return nil, err
	}
	if in.Impuesto.IsNegative() || in.Descuento.IsNegative() {
		return nil, fmt.Errorf("impuesto o descuento negativo: %w", domain.ErrInvalidInput)
	}
	if in.MetodoPago == "" {
		in.MetodoPago = "efectivo"
	}
	for i, p := range in.Pagos {
		if p.TasaCambio.IsNegative() {
			return nil, fmt.Errorf("pago %d: tasa %s: %w", i+1, p.TasaCambio, domain.ErrInvalidInput)
		}
	}

	subtotal := decimal.Zero
	for _, l := range in.Lineas {
		subtotal = subtotal.Add(l.Cantidad.Mul(l.PrecioUnitario).Round(2))
	}
	total := subtotal.Add(in.Impuesto).Sub(in.Descuento)

	tasa, err := uc.moneda.Tasa(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loteID := uuid.New().String()
	venta := &entity.Venta{
		ClienteID:  in.ClienteID,
		FechaVenta: now,
		Subtotal:   subtotal,
		Impuesto:   in.Impuesto,
		Descuento:  in.Descuento,
		Total:      total,
		MetodoPago: in.MetodoPago,
		Estado:     entity.VentaCompletada,
		Notas:      in.Notas,
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Ventas.Create(ctx, venta); err != nil {
			return err
		}
		motivo := fmt.Sprintf("Venta #%d", venta.ID)
		for _, l := range in.Lineas {
			// El asiento va primero: su lectura de stock responde
			// ErrNotFound si el producto no existe, antes de que el
			// detalle tropiece con la clave foránea.
			if _, err := inventory.Aplicar(ctx, r, inventory.Movimiento{
				ProductoID: l.ProductoID,
				Tipo:       entity.MovimientoSalida,
				Delta:      l.Cantidad.Neg(),
				Motivo:     motivo,
				Usuario:    in.Usuario,
				LoteID:     loteID,
				Fecha:      now,
			}); err != nil {
				return err
			}
			det := &entity.DetalleVenta{
				VentaID:        venta.ID,
				ProductoID:     l.ProductoID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.PrecioUnitario,
				Subtotal:       l.Cantidad.Mul(l.PrecioUnitario).Round(2),
			}
			if err := r.Ventas.CreateDetalle(ctx, det); err != nil {
				return err
			}
		}
		for _, p := range in.Pagos {
			// Cada pago conserva su propia tasa, no necesariamente la
			// vigente: un abono puede venir pactado a tasa histórica.
			tasaPago := p.TasaCambio
			if tasaPago.IsZero() {
				tasaPago = tasa
			}
			pago := &entity.PagoDocumento{
				VentaID:             venta.ID,
				NumeroDocumento:     p.NumeroDocumento,
				TipoPago:            p.TipoPago,
				MontoPagado:         p.Monto,
				MonedaPago:          p.Moneda,
				TasaCambio:          tasaPago,
				MontoEquivalenteUSD: equivalenteUSD(p.Monto, tasaPago, p.Moneda),
				DetallesPago:        p.Detalles,
				FechaPago:           now,
			}
			if err := r.Pagos.Create(ctx, pago); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("venta_id", venta.ID).
		Int("lineas", len(in.Lineas)).
		Str("total", total.String()).
		Msg("venta registrada")
	return venta, nil
}

// RegistrarPago agrega un pago a una venta existente (pagos parciales o
// posteriores). La tasa estampada es la declarada en el pago, o la
// vigente cuando no trae una.
func (uc *UseCase) RegistrarPago(ctx context.Context, ventaID int64, in PagoEntrada) (*entity.PagoDocumento, error) {
	if !in.Monto.IsPositive() {
		return nil, fmt.Errorf("monto no positivo: %w", domain.ErrInvalidInput)
	}
	if in.Moneda != entity.MonedaUSD && in.Moneda != entity.MonedaVES {
		return nil, fmt.Errorf("moneda %q: %w", in.Moneda, domain.ErrInvalidInput)
	}
	if in.TasaCambio.IsNegative() {
		return nil, fmt.Errorf("tasa %s: %w", in.TasaCambio, domain.ErrInvalidInput)
	}

	tasa := in.TasaCambio
	if tasa.IsZero() {
		var err error
		tasa, err = uc.moneda.Tasa(ctx)
		if err != nil {
			return nil, err
		}
	}

	pago := &entity.PagoDocumento{
		VentaID:             ventaID,
		NumeroDocumento:     in.NumeroDocumento,
		TipoPago:            in.TipoPago,
		MontoPagado:         in.Monto,
		MonedaPago:          in.Moneda,
		TasaCambio:          tasa,
		MontoEquivalenteUSD: equivalenteUSD(in.Monto, tasa, in.Moneda),
		FechaPago:           time.Now().UTC(),
		DetallesPago:        in.Detalles,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		venta, err := r.Ventas.GetByID(ctx, ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return fmt.Errorf("venta %d: %w", ventaID, domain.ErrNotFound)
		}
		return r.Pagos.Create(ctx, pago)
	})
	if err != nil {
		return nil, err
	}
	return pago, nil
}

// Get obtiene una venta con sus líneas; ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Venta, []*entity.DetalleVenta, error) {
	venta, err := uc.ventas.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if venta == nil {
		return nil, nil, fmt.Errorf("venta %d: %w", id, domain.ErrNotFound)
	}
	detalles, err := uc.ventas.Detalles(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return venta, detalles, nil
}

// PagosPorVenta lista los pagos de una venta.
func (uc *UseCase) PagosPorVenta(ctx context.Context, ventaID int64) ([]*entity.PagoDocumento, error) {
	return uc.pagos.ListByVenta(ctx, ventaID)
}
