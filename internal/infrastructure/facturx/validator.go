package facturx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// ErrStructure el documento no cumple la estructura mínima del perfil.
var ErrStructure = errors.New("facturx: estructura CII inválida")

var dateText = regexp.MustCompile(`^\d{8}$`)

// ValidationError lista de problemas estructurales encontrados.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("facturx: %d problema(s) estructurales: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrStructure
}

// DocumentSummary datos principales leídos de un XML CII ya emitido.
type DocumentSummary struct {
	Number     string
	TypeCode   string
	ProfileID  string
	IssueDate  string
	Currency   string
	SellerName string
	BuyerName  string
	NetTotal   string
	TaxTotal   string
	GrandTotal string
	LineCount  int
}

// Rutas relativas a la raíz rsm:CrossIndustryInvoice.
const (
	pathProfile    = "rsm:ExchangedDocumentContext/ram:GuidelineSpecifiedDocumentContextParameter/ram:ID"
	pathNumber     = "rsm:ExchangedDocument/ram:ID"
	pathTypeCode   = "rsm:ExchangedDocument/ram:TypeCode"
	pathIssueDate  = "rsm:ExchangedDocument/ram:IssueDateTime/udt:DateTimeString"
	pathAgreement  = "rsm:SupplyChainTradeTransaction/ram:ApplicableHeaderTradeAgreement"
	pathSettlement = "rsm:SupplyChainTradeTransaction/ram:ApplicableHeaderTradeSettlement"
	pathSummation  = pathSettlement + "/ram:SpecifiedTradeSettlementHeaderMonetarySummation"
	pathLines      = "rsm:SupplyChainTradeTransaction/ram:IncludedSupplyChainTradeLineItem"
)

// ValidatorService comprobación estructural del perfil MINIMUM sobre el XML emitido.
// No sustituye a la validación XSD/Schematron oficial.
type ValidatorService struct{}

// NewValidatorService crea el servicio.
func NewValidatorService() *ValidatorService {
	return &ValidatorService{}
}

// Validate parsea el documento y devuelve su resumen. Si hay problemas devuelve además un *ValidationError.
func (v *ValidatorService) Validate(xmlBytes []byte) (*DocumentSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("%w: parsear XML: %v", ErrStructure, err)
	}
	root := doc.Root()
	if root == nil || root.Space != "rsm" || root.Tag != "CrossIndustryInvoice" {
		return nil, &ValidationError{Problems: []string{"la raíz debe ser rsm:CrossIndustryInvoice"}}
	}

	var problems []string
	require := func(path string) string {
		el := root.FindElement(path)
		if el == nil || strings.TrimSpace(el.Text()) == "" {
			problems = append(problems, "falta "+path)
			return ""
		}
		return strings.TrimSpace(el.Text())
	}

	if ns := root.SelectAttrValue("xmlns:rsm", ""); ns != pkgfx.NsRsm {
		problems = append(problems, "namespace rsm inesperado: "+ns)
	}

	s := &DocumentSummary{
		ProfileID:  require(pathProfile),
		Number:     require(pathNumber),
		TypeCode:   require(pathTypeCode),
		IssueDate:  require(pathIssueDate),
		SellerName: require(pathAgreement + "/ram:SellerTradeParty/ram:Name"),
		BuyerName:  require(pathAgreement + "/ram:BuyerTradeParty/ram:Name"),
		Currency:   require(pathSettlement + "/ram:InvoiceCurrencyCode"),
		NetTotal:   require(pathSummation + "/ram:TaxBasisTotalAmount"),
		TaxTotal:   require(pathSummation + "/ram:TaxTotalAmount"),
		GrandTotal: require(pathSummation + "/ram:GrandTotalAmount"),
		LineCount:  len(root.FindElements(pathLines)),
	}
	require(pathSummation + "/ram:DuePayableAmount")
	require("rsm:SupplyChainTradeTransaction/ram:ApplicableHeaderTradeDelivery/ram:ActualDeliverySupplyChainEvent/ram:OccurrenceDateTime/udt:DateTimeString")

	switch s.ProfileID {
	case "", pkgfx.ProfileMinimum, pkgfx.ProfileBasicWL, pkgfx.ProfileBasic, pkgfx.ProfileEN16931:
	default:
		problems = append(problems, "perfil desconocido: "+s.ProfileID)
	}
	switch s.TypeCode {
	case "", pkgfx.TypeCodeInvoice, pkgfx.TypeCodeCreditNote:
	default:
		problems = append(problems, "TypeCode no admitido: "+s.TypeCode)
	}
	for _, el := range root.FindElements(".//udt:DateTimeString") {
		if el.SelectAttrValue("format", "") != pkgfx.DateFormatCCYYMMDD || !dateText.MatchString(el.Text()) {
			problems = append(problems, "fecha mal codificada: "+el.Text())
		}
	}
	for _, party := range []string{"ram:SellerTradeParty", "ram:BuyerTradeParty"} {
		if root.FindElement(pathAgreement+"/"+party+"/ram:PostalTradeAddress/ram:CountryID") == nil {
			problems = append(problems, party+": falta CountryID")
		}
	}
	if s.LineCount == 0 {
		problems = append(problems, "el documento no tiene líneas")
	}
	if msg := checkGrandTotal(s); msg != "" {
		problems = append(problems, msg)
	}

	if len(problems) > 0 {
		return s, &ValidationError{Problems: problems}
	}
	return s, nil
}

// checkGrandTotal GrandTotalAmount debe ser exactamente TaxBasisTotalAmount + TaxTotalAmount.
func checkGrandTotal(s *DocumentSummary) string {
	if s.NetTotal == "" || s.TaxTotal == "" || s.GrandTotal == "" {
		return ""
	}
	net, err1 := decimal.NewFromString(s.NetTotal)
	tax, err2 := decimal.NewFromString(s.TaxTotal)
	grand, err3 := decimal.NewFromString(s.GrandTotal)
	if err := errors.Join(err1, err2, err3); err != nil {
		return "monto no numérico en el resumen"
	}
	if !net.Add(tax).Equal(grand) {
		return fmt.Sprintf("GrandTotalAmount %s distinto de %s + %s", s.GrandTotal, s.NetTotal, s.TaxTotal)
	}
	return ""
}
