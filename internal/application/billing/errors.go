package billing

import (
	"errors"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

// Códigos de error expuestos por la API y la CLI.
const (
	CodeMissingField  = "MISSING_REQUIRED_FIELD"
	CodeInvalidDate   = "INVALID_DATE"
	CodeInvalidField  = "INVALID_FIELD"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeDuplicate     = "DUPLICATE"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternalError = "INTERNAL_ERROR"
)

// DescribeError traduce un error del caso de uso al cuerpo de error público.
// Los errores internos no exponen su mensaje.
func DescribeError(err error) dto.ErrorResponse {
	var (
		missing *domfx.MissingRequiredFieldError
		badDate *domfx.InvalidDateError
		invalid *domfx.InvalidFieldError
	)
	switch {
	case errors.As(err, &missing):
		return dto.ErrorResponse{Code: CodeMissingField, Message: err.Error(), Field: missing.Field}
	case errors.As(err, &badDate):
		return dto.ErrorResponse{Code: CodeInvalidDate, Message: err.Error(), Field: badDate.Field}
	case errors.As(err, &invalid):
		return dto.ErrorResponse{Code: CodeInvalidField, Message: err.Error(), Field: invalid.Field}
	case errors.Is(err, domain.ErrInvalidInput):
		return dto.ErrorResponse{Code: CodeInvalidInput, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return dto.ErrorResponse{Code: CodeUnauthorized, Message: "no autorizado"}
	case errors.Is(err, domain.ErrForbidden):
		return dto.ErrorResponse{Code: CodeForbidden, Message: "acceso denegado"}
	default:
		return dto.ErrorResponse{Code: CodeInternalError, Message: "error interno"}
	}
}
