package billing

import (
	"context"

	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

// InvoicePDFGenerator genera la representación legible del documento emitido.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *domfx.InvoiceDocument, generated *domfx.GeneratedDocument) ([]byte, error)
}

// XMLEmbedder adjunta el XML Factur-X a un PDF ya generado.
type XMLEmbedder func(pdfBytes, xmlBytes []byte) ([]byte, error)
