package billing_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
)

func TestGenerateBatch_OrdenYErroresPorElemento(t *testing.T) {
	f := newFixture(t, billing.EInvoiceOptions{BatchConcurrency: 3})
	ctx := context.Background()

	var reqs []dto.GenerateEInvoiceRequest
	for i := 0; i < 12; i++ {
		reqs = append(reqs, sampleRequest(fmt.Sprintf("F-B-%02d", i)))
	}
	reqs[5].Buyer.Name = ""
	reqs[9].Invoice.IssueDate = "31/02/2024"

	resp, err := f.uc.GenerateBatch(ctx, workshopID, reqs)
	require.NoError(t, err)
	require.Len(t, resp.Items, 12)
	assert.Equal(t, 10, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)

	for i, item := range resp.Items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, fmt.Sprintf("F-B-%02d", i), item.Number)
	}
	require.NotNil(t, resp.Items[5].Error)
	assert.Equal(t, billing.CodeMissingField, resp.Items[5].Error.Code)
	assert.Equal(t, "buyer.name", resp.Items[5].Error.Field)
	require.NotNil(t, resp.Items[9].Error)
	assert.Equal(t, billing.CodeInvalidDate, resp.Items[9].Error.Code)
	assert.Equal(t, "invoice.issueDate", resp.Items[9].Error.Field)

	// Cada elemento es idéntico a su generación individual.
	single, err := f.uc.Preview(ctx, workshopID, reqs[3])
	require.NoError(t, err)
	assert.Equal(t, single.Digest, resp.Items[3].Digest)
	assert.Equal(t, single.XML, resp.Items[3].XML)

	// El lote no archiva.
	_, err = f.uc.Get(ctx, workshopID, "F-B-00")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateBatch_Limites(t *testing.T) {
	f := newFixture(t, billing.EInvoiceOptions{BatchConcurrency: 2, BatchMaxItems: 2})
	ctx := context.Background()

	_, err := f.uc.GenerateBatch(ctx, workshopID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	reqs := []dto.GenerateEInvoiceRequest{sampleRequest("a"), sampleRequest("b"), sampleRequest("c")}
	_, err = f.uc.GenerateBatch(ctx, workshopID, reqs)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateBatch_ContextoCancelado(t *testing.T) {
	f := newFixture(t, billing.EInvoiceOptions{BatchConcurrency: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.GenerateBatch(ctx, workshopID, []dto.GenerateEInvoiceRequest{sampleRequest("x")})
	assert.ErrorIs(t, err, context.Canceled)
}
