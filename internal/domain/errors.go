package domain

import "errors"

// Errores de dominio del host (sin dependencias externas).
// Los errores del núcleo Factur-X viven en domain/facturx.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
