package facturx

import (
	"fmt"

	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

// GeneratorService pipeline puro: mapeo -> XML -> digest. Sin E/S ni estado compartido.
type GeneratorService struct {
	builder *XMLBuilderService
}

// NewGeneratorService crea el servicio.
func NewGeneratorService(builder *XMLBuilderService) *GeneratorService {
	if builder == nil {
		builder = NewXMLBuilderService()
	}
	return &GeneratorService{builder: builder}
}

// Generate mapea los registros de origen y devuelve el XML con su digest.
// Los errores de mapeo (*MissingRequiredFieldError, *InvalidDateError, *InvalidFieldError)
// se devuelven sin envolver para que el llamador muestre el campo tal cual.
func (g *GeneratorService) Generate(invoice domfx.InvoiceRecord, seller domfx.SellerRecord, buyer domfx.BuyerRecord) (*domfx.GeneratedDocument, error) {
	doc, err := domfx.MapToDocument(invoice, seller, buyer)
	if err != nil {
		return nil, err
	}
	return g.Render(doc)
}

// Render serializa un documento ya mapeado.
func (g *GeneratorService) Render(doc *domfx.InvoiceDocument) (*domfx.GeneratedDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("facturx: documento nil")
	}
	xmlBytes, err := g.builder.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("facturx: serializar %q: %w", doc.Number, err)
	}
	return &domfx.GeneratedDocument{
		XML:    xmlBytes,
		Digest: domfx.Digest(xmlBytes),
	}, nil
}
