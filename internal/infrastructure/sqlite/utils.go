package sqlite

import "database/sql"

// rowScanner cubre *sql.Row y *sql.Rows para compartir los helpers de scan.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullStr convierte cadena vacía en NULL (columnas opcionales como
// codigo_barras, donde UNIQUE debe ignorar los productos sin código).
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func strOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
