package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los nombres de campo del error siguen las etiquetas json, como los del núcleo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate parsea el JSON y aplica las etiquetas validate.
// Si devuelve false la respuesta de error ya está escrita y el handler debe retornar err.
func bindAndValidate(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, badBody(c)
	}
	err := validate.Struct(req)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return false, badBody(c)
	}
	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
		Code:    billing.CodeInvalidField,
		Message: fmt.Sprintf("campo %s no cumple la regla %s", field, fe.Tag()),
		Field:   field,
	})
}

// fieldPath "GenerateEInvoiceRequest.seller.PartyInput.email" -> "seller.email".
// Los segmentos en mayúscula son el tipo raíz o structs embebidos sin etiqueta json.
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p[0] >= 'A' && p[0] <= 'Z' {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}
