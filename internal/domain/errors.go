package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("producto no encontrado")
	ErrInvalidID        = errors.New("identificador inválido")
	ErrValidation       = errors.New("producto inválido")
	ErrMissingField     = errors.New("campo requerido ausente")
	ErrStoreUnavailable = errors.New("almacén no disponible")
)
