package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrFetchTimeout: un lote de consultas excedió el timeout configurado.
	// El cálculo completo se descarta; no se emiten KPIs parciales.
	ErrFetchTimeout = errors.New("timeout al cargar datos del período")
)
