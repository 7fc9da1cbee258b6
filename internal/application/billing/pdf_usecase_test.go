package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
)

type fakePDFGenerator struct {
	gotDoc    *domfx.InvoiceDocument
	gotDigest string
	err       error
}

func (g *fakePDFGenerator) GenerateInvoicePDF(_ context.Context, doc *domfx.InvoiceDocument, generated *domfx.GeneratedDocument) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.gotDoc, g.gotDigest = doc, generated.Digest
	return []byte("%PDF-fake"), nil
}

func TestGeneratePDF(t *testing.T) {
	f := newFixture(t, billing.EInvoiceOptions{})
	gen := &fakePDFGenerator{}
	var embedded []byte
	embed := func(pdfBytes, xmlBytes []byte) ([]byte, error) {
		embedded = xmlBytes
		return append(pdfBytes, []byte("+xml")...), nil
	}
	uc := billing.NewPDFUseCase(f.uc, gen, embed)

	out, filename, err := uc.GeneratePDF(context.Background(), workshopID, sampleRequest("F 2024/42"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake+xml", string(out))
	assert.Equal(t, "facture_F_2024_42.pdf", filename)
	require.NotNil(t, gen.gotDoc)
	assert.Equal(t, "F 2024/42", gen.gotDoc.Number)
	assert.Equal(t, domfx.Digest(embedded), gen.gotDigest, "el PDF muestra el digest del XML adjunto")
}

func TestGeneratePDF_Errores(t *testing.T) {
	f := newFixture(t, billing.EInvoiceOptions{})

	req := sampleRequest("F-1")
	req.Buyer.Name = ""
	_, _, err := billing.NewPDFUseCase(f.uc, &fakePDFGenerator{}, nil).GeneratePDF(context.Background(), workshopID, req)
	assert.ErrorIs(t, err, domfx.ErrMissingRequiredField)

	boom := errors.New("maroto")
	_, _, err = billing.NewPDFUseCase(f.uc, &fakePDFGenerator{err: boom}, nil).GeneratePDF(context.Background(), workshopID, sampleRequest("F-1"))
	assert.ErrorIs(t, err, boom)
}
