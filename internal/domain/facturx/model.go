// Package facturx contiene el modelo canónico del documento Factur-X (EN16931, perfil MINIMUM)
// y las funciones puras que lo construyen: normalización de direcciones, formateo de montos
// y fechas, mapeo desde los registros de facturación y digest de archivo.
//
// Todo el paquete es libre de estado y de E/S; puede usarse desde varias goroutines sin sincronización.
package facturx

import (
	"time"

	"github.com/shopspring/decimal"
)

// Optional representa un bloque opcional del esquema. El valor cero es "ausente".
type Optional[T any] struct {
	value T
	ok    bool
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None construye un Optional ausente.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get devuelve el valor y si está presente.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present indica si el bloque debe emitirse.
func (o Optional[T]) Present() bool {
	return o.ok
}

// DocumentType tipo lógico del documento.
type DocumentType int

const (
	TypeInvoice DocumentType = iota
	TypeCreditNote
)

// Address dirección postal estructurada. PostalCode y City pueden quedar vacíos.
type Address struct {
	Street      string
	PostalCode  string
	City        string
	CountryCode string // ISO 3166-1 alfa-2, siempre presente
}

// BankAccount datos bancarios del vendedor; solo existe si IBAN y BIC están ambos presentes.
type BankAccount struct {
	IBAN string
	BIC  string
}

// Party vendedor o comprador.
type Party struct {
	Name       string
	BusinessID Optional[string] // SIRET / SIREN
	VATID      Optional[string]
	Address    Address
	Email      Optional[string]
	Bank       Optional[BankAccount] // solo vendedor
}

// LineItem línea de factura. NetAmount ya viene redondeado por RoundAmount.
type LineItem struct {
	Description  string
	Quantity     decimal.Decimal
	UnitNetPrice decimal.Decimal
	VATRate      decimal.Decimal // porcentaje 0-100
	NetAmount    decimal.Decimal
}

// TaxSubtotal desglose de IVA por tipo (ram:ApplicableTradeTax de cabecera).
type TaxSubtotal struct {
	Rate        decimal.Decimal
	BasisAmount decimal.Decimal
	TaxAmount   decimal.Decimal
}

// Totals totales del documento. El bruto nunca se recibe: se deriva de Net + VAT.
type Totals struct {
	Net decimal.Decimal
	VAT decimal.Decimal
}

// Gross devuelve Net + VAT, ambos redondeados por RoundAmount, de modo que
// FormatAmount(Gross()) coincide con la suma de los montos formateados.
func (t Totals) Gross() decimal.Decimal {
	return RoundAmount(t.Net).Add(RoundAmount(t.VAT))
}

// InvoiceDocument modelo canónico e inmutable que consume el serializador.
type InvoiceDocument struct {
	Number         string
	Type           DocumentType
	TypeCode       string
	ProfileID      string
	IssueDate      time.Time
	DeliveryDate   time.Time
	DueDate        Optional[time.Time]
	Currency       string
	OrderReference Optional[string]
	Seller         Party
	Buyer          Party
	Lines          []LineItem
	TaxBreakdown   []TaxSubtotal
	Totals         Totals
}

// GeneratedDocument resultado del pipeline: texto XML y su digest SHA-256 en hex.
type GeneratedDocument struct {
	XML    []byte
	Digest string
}
