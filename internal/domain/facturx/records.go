package facturx

import "github.com/shopspring/decimal"

// Registros de origen tal como los entrega el módulo de facturación/presupuestos.
// Las fechas llegan como texto y se interpretan con ParseDate.

// InvoiceRecord cabecera de la factura de origen.
type InvoiceRecord struct {
	Number         string
	Type           DocumentType
	IssueDate      string
	DeliveryDate   string // opcional
	ServiceDate    string // opcional: fecha de realización de la prestación
	DueDate        string // opcional
	Currency       string // vacío => EUR
	OrderReference string // opcional
	LineItems      []LineItemRecord
	NetTotal       decimal.Decimal
	VATTotal       decimal.Decimal
	GrossTotal     decimal.Decimal // informativo; el bruto del documento se deriva de Net + VAT
}

// LineItemRecord línea de origen.
type LineItemRecord struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// SellerRecord taller emisor.
type SellerRecord struct {
	Name        string
	BusinessID  string
	VATID       string
	Address     string
	CountryCode string
	Email       string
	Phone       string
	IBAN        string
	BIC         string
}

// BuyerRecord cliente.
type BuyerRecord struct {
	Name        string
	BusinessID  string
	VATID       string
	Address     string
	CountryCode string
	Email       string
}
