package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Facturación.
	ErrInvalidState      = errors.New("operación no permitida en el estado actual")
	ErrImmutableInvoice  = errors.New("la factura pagada no admite cambios en ese campo")
	ErrNoEligibleEntries = errors.New("no hay registros facturables en el rango indicado")
	ErrMixedCurrency     = errors.New("los registros seleccionados tienen monedas distintas")
)
