package facturx

import (
	"errors"
	"fmt"
)

// Errores centinela para errors.Is.
var (
	ErrMissingRequiredField = errors.New("campo obligatorio ausente")
	ErrInvalidDate          = errors.New("fecha inválida")
)

// MissingRequiredFieldError campo obligatorio vacío (ej. "buyer.name"). Aborta la generación.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("facturx: campo obligatorio ausente: %s", e.Field)
}

func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// InvalidDateError fecha que no puede interpretarse en el calendario del emisor.
type InvalidDateError struct {
	Field string // vacío si el error viene del formateador
	Raw   string
}

func (e *InvalidDateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("facturx: fecha inválida en %s: %q", e.Field, e.Raw)
	}
	return fmt.Sprintf("facturx: fecha inválida: %q", e.Raw)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// ErrInvalidField valor presente pero fuera de dominio (moneda, país, cantidad, tipo de IVA).
var ErrInvalidField = errors.New("valor de campo inválido")

// InvalidFieldError campo con un valor que el esquema no admite.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("facturx: valor inválido en %s (%q): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}
