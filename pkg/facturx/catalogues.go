// Package facturx contiene catálogos y validaciones alineados a la norma
// EN16931 y a la sintaxis UN/CEFACT Cross Industry Invoice (Factur-X / ZUGFeRD).
package facturx

// =============================================================================
// Namespaces CII D16B (Factur-X 1.0)
// =============================================================================

const (
	NsRsm = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NsQdt = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
	NsRam = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NsUdt = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// =============================================================================
// BT-24 - Identificador del perfil (GuidelineSpecifiedDocumentContextParameter)
// =============================================================================

const (
	ProfileMinimum   = "urn:factur-x.eu:1p0:minimum"
	ProfileBasicWL   = "urn:factur-x.eu:1p0:basicwl"
	ProfileBasic     = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"
	ProfileEN16931   = "urn:cen.eu:en16931:2017"
	AttachmentName   = "factur-x.xml"
	DefaultProfileID = ProfileMinimum
)

// =============================================================================
// BT-3 - Tipo de documento (UNTDID 1001)
// =============================================================================

const (
	TypeCodeInvoice    = "380" // Factura comercial
	TypeCodeCreditNote = "381" // Nota de crédito
)

// =============================================================================
// Códigos de formato de fecha (UNTDID 2379)
// =============================================================================

const DateFormatCCYYMMDD = "102"

// =============================================================================
// Identificadores de esquema
// =============================================================================

const (
	SchemeSIRET = "0002" // ISO 6523: SIRENE (SIREN / SIRET)
	SchemeVAT   = "VA"   // BT-31 / BT-48: número de IVA intracomunitario
	SchemeEmail = "EM"   // BT-34 / BT-49: dirección electrónica
)

// =============================================================================
// UNTDID 4461 - Medios de pago
// =============================================================================

const (
	PaymentMeansCreditTransfer     = "30"
	PaymentMeansSEPACreditTransfer = "58"
)

// =============================================================================
// UNTDID 5153 / 5305 - Impuestos
// =============================================================================

const (
	TaxTypeVAT          = "VAT"
	TaxCategoryStandard = "S" // Tipo general o reducido
	TaxCategoryZero     = "Z" // Tipo cero
)

// =============================================================================
// UN/ECE Rec. 20 - Unidades
// =============================================================================

const (
	UnitPiece = "C62" // Unidad
	UnitHour  = "HUR"
)

// Valores por defecto de la jurisdicción emisora.
const (
	DefaultCountryCode  = "FR"
	DefaultCurrencyCode = "EUR"
	IssuingTimeZone     = "Europe/Paris"
)
