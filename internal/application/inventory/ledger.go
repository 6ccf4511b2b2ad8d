package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/ports"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// UsuarioSistema se usa cuando el caller no identifica al operador.
const UsuarioSistema = "Sistema"

// Movimiento describe una anotación pendiente en el libro de inventario.
// Delta lleva signo: negativo en salidas.
type Movimiento struct {
	ProductoID int64
	Tipo       string
	Delta      decimal.Decimal
	Motivo     string
	Usuario    string
	LoteID     string
	Fecha      time.Time
}

// Aplicar anota un movimiento en el libro y persiste el stock resultante,
// todo con los repos de la transacción del caller. Lee el stock vigente,
// calcula el nuevo y deja el registro con la foto anterior/nueva, de modo
// que el libro reconstruye el stock por pura suma de deltas.
//
// No valida que el stock resultante sea no negativo: vender sin stock
// registrado es una decisión del operador y el ajuste posterior lo
// reconcilia. Devuelve el stock resultante.
func Aplicar(ctx context.Context, r ports.Repos, m Movimiento) (decimal.Decimal, error) {
	switch m.Tipo {
	case entity.MovimientoEntrada, entity.MovimientoSalida, entity.MovimientoAjuste:
	default:
		return decimal.Zero, fmt.Errorf("tipo de movimiento %q: %w", m.Tipo, domain.ErrInvalidInput)
	}
	if m.Usuario == "" {
		m.Usuario = UsuarioSistema
	}

	anterior, err := r.Productos.GetStock(ctx, m.ProductoID)
	if err != nil {
		return decimal.Zero, err
	}
	nueva := anterior.Add(m.Delta)

	mov := &entity.MovimientoInventario{
		ProductoID:       m.ProductoID,
		Tipo:             m.Tipo,
		Cantidad:         m.Delta,
		CantidadAnterior: anterior,
		CantidadNueva:    nueva,
		Motivo:           m.Motivo,
		Usuario:          m.Usuario,
		LoteID:           m.LoteID,
		FechaMovimiento:  m.Fecha,
	}
	if err := r.Movimientos.Create(ctx, mov); err != nil {
		return decimal.Zero, err
	}
	if err := r.Productos.UpdateStock(ctx, m.ProductoID, nueva, m.Fecha); err != nil {
		return decimal.Zero, err
	}
	return nueva, nil
}
