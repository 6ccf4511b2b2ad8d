package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/ports"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// UseCase ajustes manuales y consultas del libro de inventario.
type UseCase struct {
	tx          ports.TxRunner
	productos   repository.ProductoRepository
	movimientos repository.MovimientoRepository
}

// NewUseCase construye el caso de uso. productos y movimientos van atados
// al pool; las escrituras pasan por tx.
func NewUseCase(tx ports.TxRunner, productos repository.ProductoRepository, movimientos repository.MovimientoRepository) *UseCase {
	return &UseCase{tx: tx, productos: productos, movimientos: movimientos}
}

// RegistrarAjuste fija el stock de un producto en nuevaCantidad y anota el
// delta como movimiento de ajuste. Devuelve el stock resultante.
func (uc *UseCase) RegistrarAjuste(ctx context.Context, productoID int64, nuevaCantidad decimal.Decimal, motivo, usuario string) (decimal.Decimal, error) {
	if nuevaCantidad.IsNegative() {
		return decimal.Zero, fmt.Errorf("cantidad negativa: %w", domain.ErrInvalidInput)
	}
	if motivo == "" {
		motivo = "Ajuste manual"
	}

	var resultado decimal.Decimal
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		anterior, err := r.Productos.GetStock(ctx, productoID)
		if err != nil {
			return err
		}
		delta := nuevaCantidad.Sub(anterior)
		if delta.IsZero() {
			resultado = anterior
			return nil
		}
		resultado, err = Aplicar(ctx, r, Movimiento{
			ProductoID: productoID,
			Tipo:       entity.MovimientoAjuste,
			Delta:      delta,
			Motivo:     motivo,
			Usuario:    usuario,
			LoteID:     uuid.New().String(),
			Fecha:      time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.Info().
		Int64("producto_id", productoID).
		Str("stock", resultado.String()).
		Str("motivo", motivo).
		Msg("ajuste de inventario registrado")
	return resultado, nil
}

// Historial lista los movimientos de un producto, el más reciente primero.
func (uc *UseCase) Historial(ctx context.Context, productoID int64, limit, offset int) ([]*entity.MovimientoInventario, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movimientos.ListByProducto(ctx, productoID, limit, offset)
}

// Verificar comprueba que la suma de deltas del libro coincida con el
// stock del producto. Una discrepancia es ErrIntegrity: alguien tocó
// stock_actual por fuera del libro.
func (uc *UseCase) Verificar(ctx context.Context, productoID int64) error {
	stock, err := uc.productos.GetStock(ctx, productoID)
	if err != nil {
		return err
	}
	suma, err := uc.movimientos.SumByProducto(ctx, productoID)
	if err != nil {
		return err
	}
	if !suma.Equal(stock) {
		return fmt.Errorf("producto %d: libro suma %s, stock registrado %s: %w",
			productoID, suma, stock, domain.ErrIntegrity)
	}
	return nil
}
