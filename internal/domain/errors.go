package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("credenciales incorrectas")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrUpstream el almacén tabular falló o no respondió.
	ErrUpstream = errors.New("error del almacén de datos")
	// ErrMalformedResponse el almacén respondió algo que no es una lista de filas.
	ErrMalformedResponse = errors.New("respuesta del almacén con formato inesperado")
)
