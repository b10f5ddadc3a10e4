package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnknownField  = errors.New("campo desconocido")
	ErrInvalidDate   = errors.New("fecha inválida")
	ErrRenderFailure = errors.New("no se pudo generar el documento")
)
