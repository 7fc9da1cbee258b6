package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

// WorkshopHandler perfil del taller del token.
type WorkshopHandler struct {
	uc  *billing.WorkshopUseCase
	log *logger.Logger
}

// NewWorkshopHandler construye el handler.
func NewWorkshopHandler(uc *billing.WorkshopUseCase, log *logger.Logger) *WorkshopHandler {
	return &WorkshopHandler{uc: uc, log: log.Component("http")}
}

// Get GET /api/workshop
func (h *WorkshopHandler) Get(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	resp, err := h.uc.Get(c.UserContext(), workshopID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Update PUT /api/workshop
func (h *WorkshopHandler) Update(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	var in dto.WorkshopRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	resp, err := h.uc.Update(c.UserContext(), workshopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}
