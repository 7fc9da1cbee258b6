package facturx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// ErrInvalidXMLText el documento contiene UTF-8 inválido o caracteres que XML 1.0 no admite.
var ErrInvalidXMLText = errors.New("facturx: texto no admitido en XML")

// XMLBuilderService construye el XML CII (Factur-X perfil MINIMUM) a partir del modelo canónico.
// No tiene estado: la misma entrada produce siempre los mismos bytes.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el documento completo. Los bloques opcionales ausentes no se emiten.
func (s *XMLBuilderService) Build(doc *domfx.InvoiceDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("facturx: documento nil")
	}
	issue, err := domfx.FormatDate(doc.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("facturx: fecha de emisión: %w", err)
	}
	delivery, err := domfx.FormatDate(doc.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("facturx: fecha de entrega: %w", err)
	}

	w := &xmlWriter{}
	w.buf.WriteString(xmlHeader)
	w.open("rsm:CrossIndustryInvoice",
		"xmlns:rsm", pkgfx.NsRsm,
		"xmlns:qdt", pkgfx.NsQdt,
		"xmlns:ram", pkgfx.NsRam,
		"xmlns:udt", pkgfx.NsUdt,
	)

	// ---- Contexto
	w.open("rsm:ExchangedDocumentContext")
	w.open("ram:GuidelineSpecifiedDocumentContextParameter")
	w.leaf("ram:ID", doc.ProfileID)
	w.close("ram:GuidelineSpecifiedDocumentContextParameter")
	w.close("rsm:ExchangedDocumentContext")

	// ---- Cabecera
	w.open("rsm:ExchangedDocument")
	w.leaf("ram:ID", doc.Number)
	w.leaf("ram:TypeCode", doc.TypeCode)
	w.dateTime("ram:IssueDateTime", issue)
	w.close("rsm:ExchangedDocument")

	// ---- Transacción
	w.open("rsm:SupplyChainTradeTransaction")

	w.open("ram:ApplicableHeaderTradeAgreement")
	w.party("ram:SellerTradeParty", doc.Seller)
	w.party("ram:BuyerTradeParty", doc.Buyer)
	if ref, ok := doc.OrderReference.Get(); ok {
		w.open("ram:BuyerOrderReferencedDocument")
		w.leaf("ram:IssuerAssignedID", ref)
		w.close("ram:BuyerOrderReferencedDocument")
	}
	w.close("ram:ApplicableHeaderTradeAgreement")

	w.open("ram:ApplicableHeaderTradeDelivery")
	w.open("ram:ActualDeliverySupplyChainEvent")
	w.dateTime("ram:OccurrenceDateTime", delivery)
	w.close("ram:ActualDeliverySupplyChainEvent")
	w.close("ram:ApplicableHeaderTradeDelivery")

	if err := w.settlement(doc); err != nil {
		return nil, err
	}

	for i, line := range doc.Lines {
		w.lineItem(i+1, line)
	}

	w.close("rsm:SupplyChainTradeTransaction")
	w.close("rsm:CrossIndustryInvoice")
	if !domfx.ValidXMLText(w.buf.String()) {
		return nil, ErrInvalidXMLText
	}
	return w.buf.Bytes(), nil
}

func (w *xmlWriter) settlement(doc *domfx.InvoiceDocument) error {
	w.open("ram:ApplicableHeaderTradeSettlement")
	w.leaf("ram:InvoiceCurrencyCode", doc.Currency)

	if bank, ok := doc.Seller.Bank.Get(); ok {
		w.open("ram:SpecifiedTradeSettlementPaymentMeans")
		w.leaf("ram:TypeCode", pkgfx.PaymentMeansSEPACreditTransfer)
		w.open("ram:PayeePartyCreditorFinancialAccount")
		w.leaf("ram:IBANID", bank.IBAN)
		w.close("ram:PayeePartyCreditorFinancialAccount")
		w.open("ram:PayeeSpecifiedCreditorFinancialInstitution")
		w.leaf("ram:BICID", bank.BIC)
		w.close("ram:PayeeSpecifiedCreditorFinancialInstitution")
		w.close("ram:SpecifiedTradeSettlementPaymentMeans")
	}

	if due, ok := doc.DueDate.Get(); ok {
		dueText, err := domfx.FormatDate(due)
		if err != nil {
			return fmt.Errorf("facturx: fecha de vencimiento: %w", err)
		}
		w.open("ram:SpecifiedTradePaymentTerms")
		w.dateTime("ram:DueDateDateTime", dueText)
		w.close("ram:SpecifiedTradePaymentTerms")
	}

	for _, tax := range doc.TaxBreakdown {
		w.open("ram:ApplicableTradeTax")
		w.leaf("ram:CalculatedAmount", domfx.FormatAmount(tax.TaxAmount))
		w.leaf("ram:TypeCode", pkgfx.TaxTypeVAT)
		w.leaf("ram:BasisAmount", domfx.FormatAmount(tax.BasisAmount))
		w.leaf("ram:CategoryCode", taxCategory(tax.Rate.IsZero()))
		w.leaf("ram:RateApplicablePercent", domfx.FormatPercent(tax.Rate))
		w.close("ram:ApplicableTradeTax")
	}

	gross := domfx.FormatAmount(doc.Totals.Gross())
	w.open("ram:SpecifiedTradeSettlementHeaderMonetarySummation")
	w.leaf("ram:TaxBasisTotalAmount", domfx.FormatAmount(doc.Totals.Net))
	w.leaf("ram:TaxTotalAmount", domfx.FormatAmount(doc.Totals.VAT), "currencyID", doc.Currency)
	w.leaf("ram:GrandTotalAmount", gross)
	w.leaf("ram:DuePayableAmount", gross)
	w.close("ram:SpecifiedTradeSettlementHeaderMonetarySummation")

	w.close("ram:ApplicableHeaderTradeSettlement")
	return nil
}

func (w *xmlWriter) party(element string, p domfx.Party) {
	w.open(element)
	w.leaf("ram:Name", p.Name)
	if id, ok := p.BusinessID.Get(); ok {
		w.open("ram:SpecifiedLegalOrganization")
		w.leaf("ram:ID", id, "schemeID", pkgfx.SchemeSIRET)
		w.close("ram:SpecifiedLegalOrganization")
	}

	w.open("ram:PostalTradeAddress")
	if p.Address.PostalCode != "" {
		w.leaf("ram:PostcodeCode", p.Address.PostalCode)
	}
	if p.Address.Street != "" {
		w.leaf("ram:LineOne", p.Address.Street)
	}
	if p.Address.City != "" {
		w.leaf("ram:CityName", p.Address.City)
	}
	w.leaf("ram:CountryID", p.Address.CountryCode)
	w.close("ram:PostalTradeAddress")

	if email, ok := p.Email.Get(); ok {
		w.open("ram:URIUniversalCommunication")
		w.leaf("ram:URIID", email, "schemeID", pkgfx.SchemeEmail)
		w.close("ram:URIUniversalCommunication")
	}
	if vat, ok := p.VATID.Get(); ok {
		w.open("ram:SpecifiedTaxRegistration")
		w.leaf("ram:ID", vat, "schemeID", pkgfx.SchemeVAT)
		w.close("ram:SpecifiedTaxRegistration")
	}
	w.close(element)
}

func (w *xmlWriter) lineItem(position int, line domfx.LineItem) {
	w.open("ram:IncludedSupplyChainTradeLineItem")

	w.open("ram:AssociatedDocumentLineDocument")
	w.leaf("ram:LineID", domfx.FormatLineID(position))
	w.close("ram:AssociatedDocumentLineDocument")

	w.open("ram:SpecifiedTradeProduct")
	w.leaf("ram:Name", line.Description)
	w.close("ram:SpecifiedTradeProduct")

	w.open("ram:SpecifiedLineTradeAgreement")
	w.open("ram:NetPriceProductTradePrice")
	w.leaf("ram:ChargeAmount", domfx.FormatAmount(line.UnitNetPrice))
	w.close("ram:NetPriceProductTradePrice")
	w.close("ram:SpecifiedLineTradeAgreement")

	w.open("ram:SpecifiedLineTradeDelivery")
	w.leaf("ram:BilledQuantity", domfx.FormatQuantity(line.Quantity), "unitCode", pkgfx.UnitPiece)
	w.close("ram:SpecifiedLineTradeDelivery")

	w.open("ram:SpecifiedLineTradeSettlement")
	w.open("ram:ApplicableTradeTax")
	w.leaf("ram:TypeCode", pkgfx.TaxTypeVAT)
	w.leaf("ram:CategoryCode", taxCategory(line.VATRate.IsZero()))
	w.leaf("ram:RateApplicablePercent", domfx.FormatPercent(line.VATRate))
	w.close("ram:ApplicableTradeTax")
	w.open("ram:SpecifiedTradeSettlementLineMonetarySummation")
	w.leaf("ram:LineTotalAmount", domfx.FormatAmount(line.NetAmount))
	w.close("ram:SpecifiedTradeSettlementLineMonetarySummation")
	w.close("ram:SpecifiedLineTradeSettlement")

	w.close("ram:IncludedSupplyChainTradeLineItem")
}

func taxCategory(zeroRate bool) string {
	if zeroRate {
		return pkgfx.TaxCategoryZero
	}
	return pkgfx.TaxCategoryStandard
}

// ── Escritor ─────────────────────────────────────────────────────────────────

// xmlWriter emite elementos con sangría de dos espacios. Todo texto y valor de
// atributo pasa por escapeXML; los nombres de elemento son constantes del paquete.
type xmlWriter struct {
	buf   bytes.Buffer
	depth int
}

func (w *xmlWriter) indent() {
	w.buf.WriteString(strings.Repeat("  ", w.depth))
}

func (w *xmlWriter) startTag(name string, attrs []string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.buf.WriteByte(' ')
		w.buf.WriteString(attrs[i])
		w.buf.WriteString(`="`)
		w.buf.WriteString(escapeXML(attrs[i+1]))
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
}

// open abre un elemento contenedor. attrs son pares nombre, valor.
func (w *xmlWriter) open(name string, attrs ...string) {
	w.indent()
	w.startTag(name, attrs)
	w.buf.WriteByte('\n')
	w.depth++
}

func (w *xmlWriter) close(name string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// leaf escribe un elemento de texto en una sola línea.
func (w *xmlWriter) leaf(name, text string, attrs ...string) {
	w.indent()
	w.startTag(name, attrs)
	w.buf.WriteString(escapeXML(text))
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// dateTime envuelve una fecha ya formateada en udt:DateTimeString format="102".
func (w *xmlWriter) dateTime(name, formatted string) {
	w.open(name)
	w.leaf("udt:DateTimeString", formatted, "format", pkgfx.DateFormatCCYYMMDD)
	w.close(name)
}

// escapeXML escapa los cinco metacaracteres en orden fijo; '&' primero para no escapar dos veces.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
