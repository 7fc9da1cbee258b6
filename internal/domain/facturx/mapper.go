package facturx

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// SyntheticLineDescription descripción de la línea sustituta cuando el origen no trae líneas.
const SyntheticLineDescription = "Service provided"

var hundred = decimal.NewFromInt(100)

// MapToDocument fusiona factura, vendedor y comprador en el modelo canónico.
//
// Los totales del origen son autoritativos: no se recalculan (el bruto se deriva de Net + VAT).
// Errores: *MissingRequiredFieldError (primer campo obligatorio vacío, en el orden
// seller.name, buyer.name, invoice.number, invoice.issueDate, invoice.deliveryDate),
// *InvalidDateError y *InvalidFieldError (también para texto que XML 1.0 no admite).
// El texto libre solo se recorta en los extremos; el interior se conserva.
func MapToDocument(invoice InvoiceRecord, seller SellerRecord, buyer BuyerRecord) (*InvoiceDocument, error) {
	sellerName := strings.TrimSpace(seller.Name)
	if sellerName == "" {
		return nil, &MissingRequiredFieldError{Field: "seller.name"}
	}
	buyerName := strings.TrimSpace(buyer.Name)
	if buyerName == "" {
		return nil, &MissingRequiredFieldError{Field: "buyer.name"}
	}
	number := strings.TrimSpace(invoice.Number)
	if number == "" {
		return nil, &MissingRequiredFieldError{Field: "invoice.number"}
	}
	if strings.TrimSpace(invoice.IssueDate) == "" {
		return nil, &MissingRequiredFieldError{Field: "invoice.issueDate"}
	}
	issueDate, err := parseDateField("invoice.issueDate", invoice.IssueDate)
	if err != nil {
		return nil, err
	}
	deliveryRaw := firstNonBlank(invoice.DeliveryDate, invoice.ServiceDate, invoice.IssueDate)
	if deliveryRaw == "" {
		return nil, &MissingRequiredFieldError{Field: "invoice.deliveryDate"}
	}
	deliveryDate, err := parseDateField("invoice.deliveryDate", deliveryRaw)
	if err != nil {
		return nil, err
	}
	if err := checkXMLText(
		textField{"seller.name", sellerName},
		textField{"seller.businessId", seller.BusinessID},
		textField{"seller.vatId", seller.VATID},
		textField{"seller.address", seller.Address},
		textField{"seller.email", seller.Email},
		textField{"seller.iban", seller.IBAN},
		textField{"seller.bic", seller.BIC},
		textField{"buyer.name", buyerName},
		textField{"buyer.businessId", buyer.BusinessID},
		textField{"buyer.vatId", buyer.VATID},
		textField{"buyer.address", buyer.Address},
		textField{"buyer.email", buyer.Email},
		textField{"invoice.number", number},
		textField{"invoice.orderReference", invoice.OrderReference},
	); err != nil {
		return nil, err
	}

	dueDate := None[time.Time]()
	if strings.TrimSpace(invoice.DueDate) != "" {
		d, err := parseDateField("invoice.dueDate", invoice.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = Some(d)
	}

	currency, err := pkgfx.NormalizeCurrencyCode(invoice.Currency)
	if err != nil {
		return nil, &InvalidFieldError{Field: "invoice.currency", Value: invoice.Currency, Reason: "código ISO 4217 desconocido"}
	}

	sellerParty, err := mapParty("seller", sellerName, seller.BusinessID, seller.VATID, seller.Address, seller.CountryCode, seller.Email)
	if err != nil {
		return nil, err
	}
	sellerParty.Bank = mapBank(seller.IBAN, seller.BIC)

	buyerParty, err := mapParty("buyer", buyerName, buyer.BusinessID, buyer.VATID, buyer.Address, buyer.CountryCode, buyer.Email)
	if err != nil {
		return nil, err
	}

	totals := Totals{Net: invoice.NetTotal, VAT: invoice.VATTotal}
	lines, err := mapLines(invoice.LineItems, totals)
	if err != nil {
		return nil, err
	}

	doc := &InvoiceDocument{
		Number:         number,
		Type:           invoice.Type,
		TypeCode:       typeCode(invoice.Type),
		ProfileID:      pkgfx.DefaultProfileID,
		IssueDate:      issueDate,
		DeliveryDate:   deliveryDate,
		DueDate:        dueDate,
		Currency:       currency,
		OrderReference: optionalText(invoice.OrderReference),
		Seller:         sellerParty,
		Buyer:          buyerParty,
		Lines:          lines,
		Totals:         totals,
	}
	doc.TaxBreakdown = taxBreakdown(lines, totals)
	return doc, nil
}

func typeCode(t DocumentType) string {
	if t == TypeCreditNote {
		return pkgfx.TypeCodeCreditNote
	}
	return pkgfx.TypeCodeInvoice
}

func parseDateField(field, raw string) (time.Time, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, &InvalidDateError{Field: field, Raw: raw}
	}
	return t, nil
}

func mapParty(role, name, businessID, vatID, address, country, email string) (Party, error) {
	cc, err := pkgfx.NormalizeCountryCode(country)
	if err != nil {
		return Party{}, &InvalidFieldError{Field: role + ".countryCode", Value: country, Reason: "código ISO 3166-1 desconocido"}
	}
	addr := NormalizeAddress(address)
	addr.CountryCode = cc
	return Party{
		Name:       name,
		BusinessID: optionalText(stripSpaces(businessID)),
		VATID:      optionalText(strings.ToUpper(stripSpaces(vatID))),
		Address:    addr,
		Email:      optionalText(strings.TrimSpace(email)),
	}, nil
}

// mapBank solo produce el bloque si IBAN y BIC están presentes; un par incompleto se descarta.
func mapBank(iban, bic string) Optional[BankAccount] {
	iban = strings.ToUpper(stripSpaces(iban))
	bic = strings.ToUpper(stripSpaces(bic))
	if iban == "" || bic == "" {
		return None[BankAccount]()
	}
	return Some(BankAccount{IBAN: iban, BIC: bic})
}

func mapLines(records []LineItemRecord, totals Totals) ([]LineItem, error) {
	if len(records) == 0 {
		return []LineItem{syntheticLine(totals)}, nil
	}
	lines := make([]LineItem, 0, len(records))
	for i, r := range records {
		field := "invoice.lineItems[" + strconv.Itoa(i) + "]"
		desc := strings.TrimSpace(r.Description)
		if desc == "" {
			return nil, &MissingRequiredFieldError{Field: field + ".description"}
		}
		if err := checkXMLText(textField{field + ".description", desc}); err != nil {
			return nil, err
		}
		if !r.Quantity.IsPositive() {
			return nil, &InvalidFieldError{Field: field + ".quantity", Value: r.Quantity.String(), Reason: "la cantidad debe ser positiva"}
		}
		if r.VATRate.IsNegative() || r.VATRate.GreaterThan(hundred) {
			return nil, &InvalidFieldError{Field: field + ".vatRate", Value: r.VATRate.String(), Reason: "el tipo de IVA debe estar entre 0 y 100"}
		}
		lines = append(lines, LineItem{
			Description:  desc,
			Quantity:     r.Quantity,
			UnitNetPrice: r.UnitPrice,
			VATRate:      r.VATRate,
			NetAmount:    RoundAmount(r.Quantity.Mul(r.UnitPrice)),
		})
	}
	return lines, nil
}

// syntheticLine línea única "Service provided" x1 al precio neto total. El tipo se deriva de los totales.
func syntheticLine(totals Totals) LineItem {
	rate := decimal.Zero
	if !totals.Net.IsZero() {
		rate = RoundPercent(totals.VAT.Div(totals.Net).Mul(hundred))
	}
	return LineItem{
		Description:  SyntheticLineDescription,
		Quantity:     decimal.NewFromInt(1),
		UnitNetPrice: totals.Net,
		VATRate:      rate,
		NetAmount:    RoundAmount(totals.Net),
	}
}

// taxBreakdown agrupa las líneas por tipo de IVA en orden de aparición.
// Con un solo tipo, base e impuesto son los totales del origen. Con varios, cada grupo
// se calcula desde sus líneas y el residuo se imputa al grupo de mayor base para que
// la suma del desglose coincida con los totales del documento.
func taxBreakdown(lines []LineItem, totals Totals) []TaxSubtotal {
	var groups []TaxSubtotal
	index := make(map[string]int)
	for _, l := range lines {
		key := RoundPercent(l.VATRate).String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, TaxSubtotal{Rate: RoundPercent(l.VATRate)})
		}
		groups[i].BasisAmount = groups[i].BasisAmount.Add(l.NetAmount)
	}
	if len(groups) == 1 {
		groups[0].BasisAmount = RoundAmount(totals.Net)
		groups[0].TaxAmount = RoundAmount(totals.VAT)
		return groups
	}

	var sumBasis, sumTax decimal.Decimal
	largest := 0
	for i := range groups {
		groups[i].TaxAmount = RoundAmount(groups[i].BasisAmount.Mul(groups[i].Rate).Div(hundred))
		sumBasis = sumBasis.Add(groups[i].BasisAmount)
		sumTax = sumTax.Add(groups[i].TaxAmount)
		if groups[i].BasisAmount.Abs().GreaterThan(groups[largest].BasisAmount.Abs()) {
			largest = i
		}
	}
	groups[largest].BasisAmount = groups[largest].BasisAmount.Add(RoundAmount(totals.Net).Sub(sumBasis))
	groups[largest].TaxAmount = groups[largest].TaxAmount.Add(RoundAmount(totals.VAT).Sub(sumTax))
	return groups
}

func optionalText(s string) Optional[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
