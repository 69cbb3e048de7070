package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son recuperables por el caller; ninguno tumba el proceso.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia: reintentar con lectura fresca")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
)
