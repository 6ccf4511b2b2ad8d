package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store es el almacén SQLite de la aplicación. Abre la base en modo WAL
// con lock de escritura inmediato por transacción y espera acotada
// (busy_timeout), de modo que los lectores nunca quedan bloqueados por un
// escritor y un escritor contendido falla con ErrBusy en vez de esperar
// para siempre.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base de datos y aplica las migraciones pendientes.
// busyTimeoutMS acota la espera por el lock de escritura.
func Open(path string, busyTimeoutMS int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_time_format=sqlite"+
			"&_pragma=journal_mode(WAL)"+
			"&_pragma=busy_timeout(%d)"+
			"&_pragma=synchronous(NORMAL)"+
			"&_pragma=foreign_keys(ON)",
		path, busyTimeoutMS,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping base de datos: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// DB expone el pool subyacente para repositorios y transacciones.
func (s *Store) DB() *sql.DB { return s.db }

// Path devuelve la ruta del archivo de la base de datos.
func (s *Store) Path() string { return s.path }

// Close cierra el pool de conexiones.
func (s *Store) Close() error { return s.db.Close() }

// HasColumn informa si una columna existe en una tabla. Permite que un
// caller sobre un esquema en disco más viejo trate la columna como ausente
// en lugar de fallar.
func (s *Store) HasColumn(ctx context.Context, tabla, columna string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		tabla, columna,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspeccionar columna %s.%s: %w", tabla, columna, err)
	}
	return n > 0, nil
}

// Checkpoint vuelca el WAL al archivo principal y lo trunca. Tomado entre
// commits, deja el archivo listo para un respaldo por copia directa.
func (s *Store) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return mapErr("checkpoint WAL", err)
	}
	return nil
}
