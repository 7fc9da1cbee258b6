package billing

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
)

// PDFUseCase genera la factura legible con el XML Factur-X adjunto.
// Reutiliza el pipeline de EInvoiceUseCase; el PDF no se archiva.
type PDFUseCase struct {
	einvoice  *EInvoiceUseCase
	generator InvoicePDFGenerator
	embed     XMLEmbedder
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(einvoice *EInvoiceUseCase, generator InvoicePDFGenerator, embed XMLEmbedder) *PDFUseCase {
	return &PDFUseCase{einvoice: einvoice, generator: generator, embed: embed}
}

// GeneratePDF devuelve (pdfBytes, filename, nil) o los mismos errores de mapeo que Preview.
func (uc *PDFUseCase) GeneratePDF(ctx context.Context, workshopID string, req dto.GenerateEInvoiceRequest) ([]byte, string, error) {
	seller, err := uc.einvoice.resolveSeller(ctx, workshopID, req.Seller)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.einvoice.issue(req, seller)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, out.doc, out.generated)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	if uc.embed != nil {
		if pdfBytes, err = uc.embed(pdfBytes, out.generated.XML); err != nil {
			return nil, "", fmt.Errorf("pdf: adjuntar XML: %w", err)
		}
	}
	return pdfBytes, "facture_" + safeFilename(out.doc.Number) + ".pdf", nil
}

// safeFilename conserva letras, dígitos, '-' y '_'; el resto pasa a '_'.
func safeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
}
