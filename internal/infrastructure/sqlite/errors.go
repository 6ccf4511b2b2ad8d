package sqlite

import (
	"errors"
	"fmt"

	"github.com/acaicedo/puntoventa/internal/domain"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation verifica si un error es una violación de constraint
// único (código de barras o nombre de categoría repetidos).
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// isBusy verifica si el error viene del timeout de lock de SQLite.
func isBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

// mapErr traduce errores del driver a errores de dominio, conservando el
// contexto de la operación.
func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isBusy(err):
		return fmt.Errorf("%s: %w", op, domain.ErrBusy)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
