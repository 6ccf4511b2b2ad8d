package sqlite

import (
	"context"
	"database/sql"

	"github.com/acaicedo/puntoventa/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite. El DSN del
// Store usa _txlock=immediate, así que BeginTx toma el lock de escritura
// de entrada: dos escritores concurrentes se serializan en vez de leer el
// mismo stock antes de que alguno confirme.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner sobre el pool del Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{db: store.DB()}
}

// Run inicia la transacción, ejecuta fn con repos atados a ella y hace
// Commit o Rollback. Un timeout de lock sale como domain.ErrBusy.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	repos := ports.Repos{
		Productos:   NewProductoRepository(tx),
		Movimientos: NewMovimientoRepository(tx),
		Ventas:      NewVentaRepository(tx),
		Compras:     NewCompraRepository(tx),
		Pagos:       NewPagoRepository(tx),
		Monedas:     NewMonedaRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr("commit transaction", err)
	}
	return nil
}
