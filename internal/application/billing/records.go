package billing

import (
	"strings"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

// toInvoiceRecord traduce el body de la petición al registro de origen del núcleo.
func toInvoiceRecord(in dto.InvoiceInput) (domfx.InvoiceRecord, error) {
	docType, err := parseDocumentType(in.Type)
	if err != nil {
		return domfx.InvoiceRecord{}, err
	}
	lines := make([]domfx.LineItemRecord, 0, len(in.LineItems))
	for _, l := range in.LineItems {
		lines = append(lines, domfx.LineItemRecord{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
		})
	}
	rec := domfx.InvoiceRecord{
		Number:         in.Number,
		Type:           docType,
		IssueDate:      in.IssueDate,
		DeliveryDate:   in.DeliveryDate,
		ServiceDate:    in.ServiceDate,
		DueDate:        in.DueDate,
		Currency:       in.Currency,
		OrderReference: in.OrderReference,
		LineItems:      lines,
		NetTotal:       in.NetTotal,
		VATTotal:       in.VATTotal,
	}
	if in.GrossTotal != nil {
		rec.GrossTotal = *in.GrossTotal
	}
	return rec, nil
}

func parseDocumentType(s string) (domfx.DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", entity.DocumentTypeInvoice:
		return domfx.TypeInvoice, nil
	case entity.DocumentTypeCreditNote:
		return domfx.TypeCreditNote, nil
	default:
		return domfx.TypeInvoice, &domfx.InvalidFieldError{
			Field:  "invoice.type",
			Value:  s,
			Reason: "debe ser invoice o credit_note",
		}
	}
}

func documentTypeName(t domfx.DocumentType) string {
	if t == domfx.TypeCreditNote {
		return entity.DocumentTypeCreditNote
	}
	return entity.DocumentTypeInvoice
}

func toBuyerRecord(in dto.PartyInput) domfx.BuyerRecord {
	return domfx.BuyerRecord{
		Name:        in.Name,
		BusinessID:  in.BusinessID,
		VATID:       in.VATID,
		Address:     in.Address,
		CountryCode: in.CountryCode,
		Email:       in.Email,
	}
}

// toSellerRecord el vendedor explícito tiene prioridad sobre el perfil del taller.
// Sin ninguno de los dos el registro queda vacío y el mapeo falla en seller.name.
func toSellerRecord(explicit *dto.SellerInput, w *entity.Workshop) domfx.SellerRecord {
	if explicit != nil {
		return domfx.SellerRecord{
			Name:        explicit.Name,
			BusinessID:  explicit.BusinessID,
			VATID:       explicit.VATID,
			Address:     explicit.Address,
			CountryCode: explicit.CountryCode,
			Email:       explicit.Email,
			Phone:       explicit.Phone,
			IBAN:        explicit.IBAN,
			BIC:         explicit.BIC,
		}
	}
	if w == nil {
		return domfx.SellerRecord{}
	}
	return domfx.SellerRecord{
		Name:        w.Name,
		BusinessID:  w.SIRET,
		VATID:       w.VATID,
		Address:     w.Address,
		CountryCode: w.CountryCode,
		Email:       w.Email,
		Phone:       w.Phone,
		IBAN:        w.IBAN,
		BIC:         w.BIC,
	}
}
