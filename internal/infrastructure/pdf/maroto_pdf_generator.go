// Package pdf genera la representación legible de la factura y le adjunta el XML Factur-X.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + SIRET      │  FACTURE / AVOIR N° + Fecha  │
//	│  VENDEUR / CLIENT: dirección, IVA, contacto                 │
//	│  TABLA: Désignation | Qté | P.U. HT | TVA | Total HT        │
//	│  TOTALES: Total HT / TVA / Total TTC + desglose por tipo    │
//	│  FOOTER: digest SHA-256 + QR + IBAN/BIC                     │
//	└─────────────────────────────────────────────────────────────┘
//
// Todos los montos y fechas se toman del Formatter del núcleo; el PDF no formatea por su cuenta.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 55, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF legible del documento ya emitido.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	doc *domfx.InvoiceDocument,
	generated *domfx.GeneratedDocument,
) ([]byte, error) {
	if doc == nil || generated == nil {
		return nil, fmt.Errorf("pdf: documento requerido")
	}
	issue, err := displayDate(doc.IssueDate)
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(doc)+" "+doc.Number, true).
		WithAuthor(doc.Seller.Name, true).
		WithSubject("Factur-X MINIMUM", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, issue))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	m.AddRows(taxRows(doc)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRows(doc, generated)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *domfx.InvoiceDocument, issue string) core.Row {
	sellerID := "SIRET : —"
	if id, ok := doc.Seller.BusinessID.Get(); ok {
		sellerID = "SIRET : " + id
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Seller.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(sellerID, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(documentTitle(doc)), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(doc.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Date : "+issue, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func partiesRow(doc *domfx.InvoiceDocument) core.Row {
	party := func(title string, p domfx.Party) core.Col {
		c := col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(addressLine(p.Address), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
		if vat, ok := p.VATID.Get(); ok {
			c.Add(text.New("TVA : "+vat, props.Text{Size: 8, Top: 17, Color: colorGray}))
		}
		if email, ok := p.Email.Get(); ok {
			c.Add(text.New(email, props.Text{Size: 8, Top: 22, Color: colorGray}))
		}
		return c
	}
	return row.New(28).Add(party("VENDEUR", doc.Seller), party("CLIENT", doc.Buyer))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2}))
	}
	return row.New(8).Add(
		h("Désignation", 5, align.Left),
		h("Qté", 1, align.Center),
		h("P.U. HT", 2, align.Right),
		h("TVA", 1, align.Center),
		h("Total HT", 3, align.Right),
	)
}

func lineRows(doc *domfx.InvoiceDocument) []core.Row {
	rows := make([]core.Row, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		rows = append(rows, row.New(7).Add(
			col.New(5).Add(text.New(l.Description, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(domfx.FormatQuantity(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(domfx.FormatAmount(l.UnitNetPrice), doc.Currency), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(domfx.FormatPercent(l.VATRate)+" %", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money(domfx.FormatAmount(l.NetAmount), doc.Currency), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalsRow(doc *domfx.InvoiceDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Total HT :", 1), label("TVA :", 7), label("Total TTC :", 13)),
		col.New(3).Add(
			value(money(domfx.FormatAmount(doc.Totals.Net), doc.Currency), 1),
			value(money(domfx.FormatAmount(doc.Totals.VAT), doc.Currency), 7),
			text.New(money(domfx.FormatAmount(doc.Totals.Gross()), doc.Currency), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

// taxRows desglose por tipo; solo si hay más de un tipo.
func taxRows(doc *domfx.InvoiceDocument) []core.Row {
	if len(doc.TaxBreakdown) < 2 {
		return nil
	}
	rows := make([]core.Row, 0, len(doc.TaxBreakdown))
	for _, t := range doc.TaxBreakdown {
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(6).Add(text.New(fmt.Sprintf("TVA %s %% sur %s : %s",
				domfx.FormatPercent(t.Rate),
				money(domfx.FormatAmount(t.BasisAmount), doc.Currency),
				money(domfx.FormatAmount(t.TaxAmount), doc.Currency),
			), props.Text{Size: 7, Align: align.Right, Color: colorGray})),
		))
	}
	return rows
}

func footerRows(doc *domfx.InvoiceDocument, generated *domfx.GeneratedDocument) []core.Row {
	rows := []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(generated.Digest, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Empreinte SHA-256 du fichier factur-x.xml :", props.Text{Style: fontstyle.Bold, Size: 7, Top: 2, Left: 3}),
				text.New(generated.Digest, props.Text{Size: 7, Top: 7, Left: 3, Color: colorGray}),
				text.New("Le fichier factur-x.xml joint fait foi.", props.Text{Size: 7, Top: 13, Left: 3, Color: colorGray}),
			),
		),
	}
	if due, ok := doc.DueDate.Get(); ok {
		if s, err := displayDate(due); err == nil {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New("Échéance : "+s, props.Text{Size: 8, Top: 1}),
			)))
		}
	}
	if bank, ok := doc.Seller.Bank.Get(); ok {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Règlement par virement - IBAN : %s  BIC : %s", bank.IBAN, bank.BIC), props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(doc *domfx.InvoiceDocument) string {
	if doc.Type == domfx.TypeCreditNote {
		return "Avoir"
	}
	return "Facture"
}

// displayDate DD/MM/AAAA a partir del formato CCYYMMDD del núcleo.
func displayDate(t time.Time) (string, error) {
	s, err := domfx.FormatDate(t)
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	return s[6:8] + "/" + s[4:6] + "/" + s[:4], nil
}

func addressLine(a domfx.Address) string {
	var parts []string
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if locality := strings.TrimSpace(a.PostalCode + " " + a.City); locality != "" {
		parts = append(parts, locality)
	}
	parts = append(parts, a.CountryCode)
	return strings.Join(parts, ", ")
}

func money(amount, currency string) string {
	return amount + " " + currency
}
