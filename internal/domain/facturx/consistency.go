package facturx

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// lineSumTolerance una unidad menor de la moneda.
var lineSumTolerance = decimal.New(1, -amountPlaces)

// ErrInconsistentTotals la suma de las líneas no cuadra con el neto del documento.
var ErrInconsistentTotals = errors.New("suma de líneas distinta del total neto")

// CheckConsistency informe consultivo sobre un documento ya mapeado. No bloquea la generación:
// el núcleo no juzga la corrección comercial, solo la señala.
// Devuelve nil o un errors.Join con todos los hallazgos.
func CheckConsistency(doc *InvoiceDocument) error {
	if doc == nil {
		return nil
	}
	var findings []error

	var sum decimal.Decimal
	for _, l := range doc.Lines {
		sum = sum.Add(l.NetAmount)
	}
	net := RoundAmount(doc.Totals.Net)
	if diff := sum.Sub(net).Abs(); diff.GreaterThan(lineSumTolerance) {
		findings = append(findings, fmt.Errorf("%w: líneas %s, neto %s", ErrInconsistentTotals, FormatAmount(sum), FormatAmount(net)))
	}

	for _, p := range []struct {
		role  string
		party Party
	}{{"seller", doc.Seller}, {"buyer", doc.Buyer}} {
		id, ok := p.party.BusinessID.Get()
		if !ok || p.party.Address.CountryCode != pkgfx.DefaultCountryCode {
			continue
		}
		if err := pkgfx.ValidateSIRENOrSIRET(id); err != nil {
			findings = append(findings, fmt.Errorf("%s.businessId: %w", p.role, err))
		}
	}

	return errors.Join(findings...)
}
