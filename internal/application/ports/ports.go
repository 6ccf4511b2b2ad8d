package ports

import (
	"context"

	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción: una unidad
// de trabajo es dueña de todas las escrituras que se ejecutan con ellos.
type Repos struct {
	Productos   repository.ProductoRepository
	Movimientos repository.MovimientoRepository
	Ventas      repository.VentaRepository
	Compras     repository.CompraRepository
	Pagos       repository.PagoRepository
	Monedas     repository.MonedaRepository
}

// TxRunner ejecuta fn dentro de una transacción con lock de escritura
// inmediato, pasando repositorios atados a esa transacción. Commit si fn
// devuelve nil; rollback completo en cualquier error (incluido ErrBusy por
// timeout del lock). Nunca reintenta: esa política es del caller.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
