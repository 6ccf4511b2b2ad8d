package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrEmptyCart    = errors.New("carrito vacío")
	ErrBusy         = errors.New("base de datos ocupada")
	ErrIntegrity    = errors.New("inconsistencia de inventario")
)
