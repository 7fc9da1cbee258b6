package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento tal como se guardan y se exponen por la API.
const (
	DocumentTypeInvoice    = "invoice"
	DocumentTypeCreditNote = "credit_note"
)

// ArchiveRecord registro de archivo de un documento Factur-X emitido.
// El digest es la prueba de integridad; el sello, si existe, la de origen.
type ArchiveRecord struct {
	ID            string
	WorkshopID    string
	InvoiceNumber string
	DocumentType  string // ver DocumentType*
	TypeCode      string // 380 / 381
	IssueDate     time.Time
	Currency      string
	NetTotal      decimal.Decimal
	VATTotal      decimal.Decimal
	GrossTotal    decimal.Decimal
	Digest        string // SHA-256 hex del XML emitido
	Seal          string // Base64, vacío si no hay certificado
	XML           []byte
	CreatedAt     time.Time
}
