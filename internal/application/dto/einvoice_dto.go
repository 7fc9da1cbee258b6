package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateEInvoiceRequest body de POST /api/einvoices y de la CLI.
// Seller es opcional: si falta se toma el perfil del taller del token.
type GenerateEInvoiceRequest struct {
	Invoice InvoiceInput `json:"invoice"`
	Buyer   PartyInput   `json:"buyer"`
	Seller  *SellerInput `json:"seller,omitempty" validate:"omitempty"`
}

// InvoiceInput cabecera de la factura de origen. Las fechas aceptan YYYY-MM-DD o RFC 3339.
type InvoiceInput struct {
	Number         string           `json:"number"`
	Type           string           `json:"type,omitempty" validate:"omitempty,oneof=invoice credit_note"`
	IssueDate      string           `json:"issue_date"`
	DeliveryDate   string           `json:"delivery_date,omitempty"`
	ServiceDate    string           `json:"service_date,omitempty"`
	DueDate        string           `json:"due_date,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	OrderReference string           `json:"order_reference,omitempty" validate:"max=100"`
	LineItems      []LineItemInput  `json:"line_items,omitempty"`
	NetTotal       decimal.Decimal  `json:"net_total"`
	VATTotal       decimal.Decimal  `json:"vat_total"`
	GrossTotal     *decimal.Decimal `json:"gross_total,omitempty"`
}

// LineItemInput línea de origen.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// PartyInput comprador.
type PartyInput struct {
	Name        string `json:"name"`
	BusinessID  string `json:"business_id,omitempty"`
	VATID       string `json:"vat_id,omitempty"`
	Address     string `json:"address,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
}

// SellerInput vendedor explícito (sustituye al perfil del taller).
type SellerInput struct {
	PartyInput
	Phone string `json:"phone,omitempty" validate:"max=32"`
	IBAN  string `json:"iban,omitempty" validate:"max=42"`
	BIC   string `json:"bic,omitempty" validate:"max=11"`
}

// EInvoiceResponse documento generado y archivado.
type EInvoiceResponse struct {
	ID           string          `json:"id,omitempty"`
	Number       string          `json:"number"`
	DocumentType string          `json:"document_type"`
	TypeCode     string          `json:"type_code"`
	IssueDate    string          `json:"issue_date"`
	Currency     string          `json:"currency"`
	NetTotal     decimal.Decimal `json:"net_total"`
	VATTotal     decimal.Decimal `json:"vat_total"`
	GrossTotal   decimal.Decimal `json:"gross_total"`
	Digest       string          `json:"digest"`
	Seal         string          `json:"seal,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`
	XML          string          `json:"xml,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}

// EInvoiceListResponse página del registro de archivo.
type EInvoiceListResponse struct {
	Items []EInvoiceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BatchRequest body de POST /api/einvoices/batch.
type BatchRequest struct {
	Items []GenerateEInvoiceRequest `json:"items" validate:"dive"`
}

// BatchItemResult resultado de un elemento del lote, en la misma posición que la entrada.
type BatchItemResult struct {
	Index  int            `json:"index"`
	Number string         `json:"number,omitempty"`
	Digest string         `json:"digest,omitempty"`
	XML    string         `json:"xml,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse resultado del lote.
type BatchResponse struct {
	Items     []BatchItemResult `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}
