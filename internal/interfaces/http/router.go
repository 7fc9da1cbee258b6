package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EInvoiceUC *billing.EInvoiceUseCase
	PDFUC      *billing.PDFUseCase
	WorkshopUC *billing.WorkshopUseCase
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleAccountant)

	workshop := api.Group("/workshop")
	workshopHandler := NewWorkshopHandler(deps.WorkshopUC, deps.Logger)
	workshop.Get("/", anyRole, workshopHandler.Get)
	workshop.Put("/", RequireRole(RoleAdmin), workshopHandler.Update)

	einvoices := api.Group("/einvoices", anyRole)
	h := NewEInvoiceHandler(deps.EInvoiceUC, deps.PDFUC, deps.Logger)
	einvoices.Post("/", h.Create)
	einvoices.Get("/", h.List)
	einvoices.Post("/preview", h.Preview)
	einvoices.Post("/batch", h.Batch)
	einvoices.Post("/pdf", h.PDF)
	einvoices.Get("/:number", h.Get)
	einvoices.Get("/:number/xml", h.XML)
	einvoices.Get("/:number/bundle", h.Bundle)
}
