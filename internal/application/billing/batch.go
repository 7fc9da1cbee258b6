package billing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
)

// GenerateBatch genera en paralelo (sin sellar ni archivar) con como mucho
// BatchConcurrency documentos a la vez. El resultado conserva el orden de entrada y
// el fallo de un elemento no interrumpe a los demás.
func (uc *EInvoiceUseCase) GenerateBatch(ctx context.Context, workshopID string, reqs []dto.GenerateEInvoiceRequest) (*dto.BatchResponse, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: el lote está vacío", domain.ErrInvalidInput)
	}
	if len(reqs) > uc.opts.BatchMaxItems {
		return nil, fmt.Errorf("%w: el lote admite como mucho %d documentos", domain.ErrInvalidInput, uc.opts.BatchMaxItems)
	}

	// El perfil del taller se lee una sola vez; solo se usa en los elementos sin vendedor explícito.
	workshop, err := uc.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("einvoice: obtener taller: %w", err)
	}

	results := make([]dto.BatchItemResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.BatchConcurrency)

	for i := range reqs {
		g.Go(func() error {
			results[i] = dto.BatchItemResult{Index: i, Number: reqs[i].Invoice.Number}
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := uc.issue(reqs[i], toSellerRecord(reqs[i].Seller, workshop))
			if err != nil {
				e := DescribeError(err)
				results[i].Error = &e
				return nil
			}
			results[i].Number = out.doc.Number
			results[i].Digest = out.generated.Digest
			results[i].XML = string(out.generated.XML)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.BatchResponse{Items: results}
	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	uc.log.Info().
		Str("workshop_id", workshopID).
		Int("succeeded", resp.Succeeded).
		Int("failed", resp.Failed).
		Msg("lote Factur-X generado")
	return resp, nil
}
