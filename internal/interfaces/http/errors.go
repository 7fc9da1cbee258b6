package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

var statusByCode = map[string]int{
	billing.CodeMissingField: fiber.StatusUnprocessableEntity,
	billing.CodeInvalidDate:  fiber.StatusUnprocessableEntity,
	billing.CodeInvalidField: fiber.StatusUnprocessableEntity,
	billing.CodeInvalidInput: fiber.StatusBadRequest,
	billing.CodeNotFound:     fiber.StatusNotFound,
	billing.CodeDuplicate:    fiber.StatusConflict,
	billing.CodeUnauthorized: fiber.StatusUnauthorized,
	billing.CodeForbidden:    fiber.StatusForbidden,
}

// respondError traduce el error del caso de uso a status + cuerpo. Solo los 5xx se registran.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	body := billing.DescribeError(err)
	status, ok := statusByCode[body.Code]
	if !ok {
		status = fiber.StatusInternalServerError
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo JSON inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: billing.CodeUnauthorized, Message: "token inválido"})
}
