package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

// HeaderDocumentDigest lleva el SHA-256 hex del XML devuelto.
const HeaderDocumentDigest = "X-Document-Digest"

const mimeXML = "application/xml; charset=utf-8"

// EInvoiceHandler endpoints de emisión y archivo Factur-X (protegido).
type EInvoiceHandler struct {
	uc  *billing.EInvoiceUseCase
	pdf *billing.PDFUseCase
	log *logger.Logger
}

// NewEInvoiceHandler construye el handler.
func NewEInvoiceHandler(uc *billing.EInvoiceUseCase, pdf *billing.PDFUseCase, log *logger.Logger) *EInvoiceHandler {
	return &EInvoiceHandler{uc: uc, pdf: pdf, log: log.Component("http")}
}

// Create emite y archiva un documento.
// POST /api/einvoices
func (h *EInvoiceHandler) Create(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	var in dto.GenerateEInvoiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	resp, err := h.uc.Generate(c.UserContext(), workshopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Preview devuelve el XML sin archivarlo; el digest va en X-Document-Digest.
// POST /api/einvoices/preview
func (h *EInvoiceHandler) Preview(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	var in dto.GenerateEInvoiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	resp, err := h.uc.Preview(c.UserContext(), workshopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(HeaderDocumentDigest, resp.Digest)
	c.Set(fiber.HeaderContentType, mimeXML)
	return c.SendString(resp.XML)
}

// Batch genera varios documentos sin archivarlos.
// POST /api/einvoices/batch
func (h *EInvoiceHandler) Batch(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	var in dto.BatchRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	resp, err := h.uc.GenerateBatch(c.UserContext(), workshopID, in.Items)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// PDF factura legible con factur-x.xml adjunto.
// POST /api/einvoices/pdf
func (h *EInvoiceHandler) PDF(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	var in dto.GenerateEInvoiceRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	pdfBytes, filename, err := h.pdf.GeneratePDF(c.UserContext(), workshopID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// List registro de archivo del taller.
// GET /api/einvoices?limit=&offset=
func (h *EInvoiceHandler) List(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: queryInt(c, "limit"), Offset: queryInt(c, "offset")}
	resp, err := h.uc.List(c.UserContext(), workshopID, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// Get metadatos de un documento archivado.
// GET /api/einvoices/:number
func (h *EInvoiceHandler) Get(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	resp, err := h.uc.Get(c.UserContext(), workshopID, numberParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(resp)
}

// XML bytes exactos archivados.
// GET /api/einvoices/:number/xml
func (h *EInvoiceHandler) XML(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	xmlBytes, digest, err := h.uc.ArchivedXML(c.UserContext(), workshopID, numberParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(HeaderDocumentDigest, digest)
	c.Set(fiber.HeaderContentType, mimeXML)
	return c.Send(xmlBytes)
}

// Bundle ZIP de archivo.
// GET /api/einvoices/:number/bundle
func (h *EInvoiceHandler) Bundle(c *fiber.Ctx) error {
	workshopID := GetWorkshopID(c)
	if workshopID == "" {
		return unauthorized(c)
	}
	zipBytes, filename, err := h.uc.Bundle(c.UserContext(), workshopID, numberParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(zipBytes)
}

// numberParam los números de factura pueden llevar '/' codificado como %2F.
func numberParam(c *fiber.Ctx) string {
	raw := c.Params("number")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func queryInt(c *fiber.Ctx, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
