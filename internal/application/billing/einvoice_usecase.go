package billing

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

// EInvoiceOptions parámetros del caso de uso que vienen de la configuración.
type EInvoiceOptions struct {
	SealCert         tls.Certificate // sin Certificate => no se sella
	BatchConcurrency int
	BatchMaxItems    int
}

// EInvoiceUseCase emite documentos Factur-X: mapeo, XML, digest, control estructural,
// informe de consistencia, sello opcional y registro de archivo.
type EInvoiceUseCase struct {
	workshopRepo repository.WorkshopRepository
	archiveRepo  repository.ArchiveRepository
	generator    *infrafx.GeneratorService
	validator    *infrafx.ValidatorService
	sealer       pkgfx.Sealer
	opts         EInvoiceOptions
	log          *logger.Logger
	now          func() time.Time
}

// NewEInvoiceUseCase construye el caso de uso.
func NewEInvoiceUseCase(
	workshopRepo repository.WorkshopRepository,
	archiveRepo repository.ArchiveRepository,
	generator *infrafx.GeneratorService,
	validator *infrafx.ValidatorService,
	sealer pkgfx.Sealer,
	opts EInvoiceOptions,
	log *logger.Logger,
) *EInvoiceUseCase {
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 1
	}
	if opts.BatchMaxItems < 1 {
		opts.BatchMaxItems = 200
	}
	return &EInvoiceUseCase{
		workshopRepo: workshopRepo,
		archiveRepo:  archiveRepo,
		generator:    generator,
		validator:    validator,
		sealer:       sealer,
		opts:         opts,
		log:          log.Component("einvoice"),
		now:          time.Now,
	}
}

// issued documento ya serializado y controlado, listo para sellar o devolver.
type issued struct {
	doc       *domfx.InvoiceDocument
	generated *domfx.GeneratedDocument
	warnings  []string
}

// Generate emite el documento y lo archiva.
//
// Retorna:
//   - errores de mapeo del núcleo (*MissingRequiredFieldError, *InvalidDateError, *InvalidFieldError);
//   - domain.ErrDuplicate si el número ya está archivado para el taller;
//   - cualquier otro error es interno (fallo estructural, sello, persistencia).
func (uc *EInvoiceUseCase) Generate(ctx context.Context, workshopID string, req dto.GenerateEInvoiceRequest) (*dto.EInvoiceResponse, error) {
	seller, err := uc.resolveSeller(ctx, workshopID, req.Seller)
	if err != nil {
		return nil, err
	}
	out, err := uc.issue(req, seller)
	if err != nil {
		return nil, err
	}

	// El número se comprueba antes de sellar para no firmar un documento que no se va a guardar.
	existing, err := uc.archiveRepo.GetByNumber(ctx, workshopID, out.doc.Number)
	if err != nil {
		return nil, fmt.Errorf("einvoice: consultar archivo: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("factura %s ya emitida: %w", out.doc.Number, domain.ErrDuplicate)
	}

	seal, err := uc.seal(out.generated.XML)
	if err != nil {
		return nil, err
	}

	rec := &entity.ArchiveRecord{
		ID:            uuid.New().String(),
		WorkshopID:    workshopID,
		InvoiceNumber: out.doc.Number,
		DocumentType:  documentTypeName(out.doc.Type),
		TypeCode:      out.doc.TypeCode,
		IssueDate:     out.doc.IssueDate,
		Currency:      out.doc.Currency,
		NetTotal:      domfx.RoundAmount(out.doc.Totals.Net),
		VATTotal:      domfx.RoundAmount(out.doc.Totals.VAT),
		GrossTotal:    out.doc.Totals.Gross(),
		Digest:        out.generated.Digest,
		Seal:          seal,
		XML:           out.generated.XML,
		CreatedAt:     uc.now().UTC(),
	}
	if err := uc.archiveRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("einvoice: archivar %s: %w", rec.InvoiceNumber, err)
	}

	uc.log.Info().
		Str("workshop_id", workshopID).
		Str("number", rec.InvoiceNumber).
		Str("type_code", rec.TypeCode).
		Str("digest", rec.Digest).
		Bool("sealed", seal != "").
		Msg("documento Factur-X emitido y archivado")

	resp := recordResponse(rec, true)
	resp.Warnings = out.warnings
	return resp, nil
}

// Preview ejecuta solo el pipeline puro: no sella ni archiva.
func (uc *EInvoiceUseCase) Preview(ctx context.Context, workshopID string, req dto.GenerateEInvoiceRequest) (*dto.EInvoiceResponse, error) {
	seller, err := uc.resolveSeller(ctx, workshopID, req.Seller)
	if err != nil {
		return nil, err
	}
	out, err := uc.issue(req, seller)
	if err != nil {
		return nil, err
	}
	return previewResponse(out), nil
}

// Get devuelve los metadatos archivados (sin XML).
func (uc *EInvoiceUseCase) Get(ctx context.Context, workshopID, number string) (*dto.EInvoiceResponse, error) {
	rec, err := uc.archived(ctx, workshopID, number)
	if err != nil {
		return nil, err
	}
	return recordResponse(rec, false), nil
}

// List página del registro de archivo del taller.
func (uc *EInvoiceUseCase) List(ctx context.Context, workshopID string, page dto.PageRequest) (*dto.EInvoiceListResponse, error) {
	page.Normalize()
	recs, err := uc.archiveRepo.ListByWorkshop(ctx, workshopID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("einvoice: listar archivo: %w", err)
	}
	items := make([]dto.EInvoiceResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, *recordResponse(r, false))
	}
	return &dto.EInvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ArchivedXML devuelve los bytes exactos emitidos y su digest.
func (uc *EInvoiceUseCase) ArchivedXML(ctx context.Context, workshopID, number string) ([]byte, string, error) {
	rec, err := uc.verified(ctx, workshopID, number)
	if err != nil {
		return nil, "", err
	}
	return rec.XML, rec.Digest, nil
}

// Bundle ZIP de archivo (XML + digest + sello) y su nombre de fichero.
func (uc *EInvoiceUseCase) Bundle(ctx context.Context, workshopID, number string) ([]byte, string, error) {
	rec, err := uc.verified(ctx, workshopID, number)
	if err != nil {
		return nil, "", err
	}
	zipBytes, err := infrafx.CompressArchiveBundle(rec.XML, rec.Digest, rec.Seal)
	if err != nil {
		return nil, "", fmt.Errorf("einvoice: empaquetar %s: %w", number, err)
	}
	return zipBytes, bundleFilename(number), nil
}

// verified registro archivado cuyo XML sigue correspondiendo al digest guardado.
func (uc *EInvoiceUseCase) verified(ctx context.Context, workshopID, number string) (*entity.ArchiveRecord, error) {
	rec, err := uc.archived(ctx, workshopID, number)
	if err != nil {
		return nil, err
	}
	if got := domfx.Digest(rec.XML); got != rec.Digest {
		uc.log.Error().Str("number", number).Str("stored", rec.Digest).Str("computed", got).Msg("digest de archivo no coincide")
		return nil, fmt.Errorf("einvoice: integridad de %s comprometida", number)
	}
	return rec, nil
}

func (uc *EInvoiceUseCase) archived(ctx context.Context, workshopID, number string) (*entity.ArchiveRecord, error) {
	rec, err := uc.archiveRepo.GetByNumber(ctx, workshopID, number)
	if err != nil {
		return nil, fmt.Errorf("einvoice: consultar archivo: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// resolveSeller vendedor explícito o, si no viene, el perfil del taller del token.
func (uc *EInvoiceUseCase) resolveSeller(ctx context.Context, workshopID string, explicit *dto.SellerInput) (domfx.SellerRecord, error) {
	if explicit != nil {
		return toSellerRecord(explicit, nil), nil
	}
	w, err := uc.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		return domfx.SellerRecord{}, fmt.Errorf("einvoice: obtener taller: %w", err)
	}
	return toSellerRecord(nil, w), nil
}

// issue pipeline puro sobre un vendedor ya resuelto. Seguro para uso concurrente.
func (uc *EInvoiceUseCase) issue(req dto.GenerateEInvoiceRequest, seller domfx.SellerRecord) (*issued, error) {
	invoice, err := toInvoiceRecord(req.Invoice)
	if err != nil {
		return nil, err
	}
	doc, err := domfx.MapToDocument(invoice, seller, toBuyerRecord(req.Buyer))
	if err != nil {
		return nil, err
	}
	generated, err := uc.generator.Render(doc)
	if err != nil {
		return nil, err
	}
	if _, err := uc.validator.Validate(generated.XML); err != nil {
		return nil, fmt.Errorf("einvoice: documento %s no supera el control estructural: %w", doc.Number, err)
	}

	out := &issued{doc: doc, generated: generated, warnings: splitFindings(domfx.CheckConsistency(doc))}
	for _, w := range out.warnings {
		uc.log.Warn().Str("number", doc.Number).Str("finding", w).Msg("informe de consistencia")
	}
	return out, nil
}

func (uc *EInvoiceUseCase) seal(xmlBytes []byte) (string, error) {
	if uc.sealer == nil || len(uc.opts.SealCert.Certificate) == 0 {
		return "", nil
	}
	seal, err := uc.sealer.Seal(xmlBytes, uc.opts.SealCert)
	if err != nil {
		return "", fmt.Errorf("einvoice: sellar: %w", err)
	}
	return seal, nil
}

// splitFindings separa un errors.Join en mensajes individuales.
func splitFindings(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}

func recordResponse(rec *entity.ArchiveRecord, withXML bool) *dto.EInvoiceResponse {
	created := rec.CreatedAt
	resp := &dto.EInvoiceResponse{
		ID:           rec.ID,
		Number:       rec.InvoiceNumber,
		DocumentType: rec.DocumentType,
		TypeCode:     rec.TypeCode,
		IssueDate:    domfx.CivilDate(rec.IssueDate),
		Currency:     rec.Currency,
		NetTotal:     rec.NetTotal,
		VATTotal:     rec.VATTotal,
		GrossTotal:   rec.GrossTotal,
		Digest:       rec.Digest,
		Seal:         rec.Seal,
		CreatedAt:    &created,
	}
	if withXML {
		resp.XML = string(rec.XML)
	}
	return resp
}

func previewResponse(out *issued) *dto.EInvoiceResponse {
	return &dto.EInvoiceResponse{
		Number:       out.doc.Number,
		DocumentType: documentTypeName(out.doc.Type),
		TypeCode:     out.doc.TypeCode,
		IssueDate:    domfx.CivilDate(out.doc.IssueDate),
		Currency:     out.doc.Currency,
		NetTotal:     domfx.RoundAmount(out.doc.Totals.Net),
		VATTotal:     domfx.RoundAmount(out.doc.Totals.VAT),
		GrossTotal:   out.doc.Totals.Gross(),
		Digest:       out.generated.Digest,
		Warnings:     out.warnings,
		XML:          string(out.generated.XML),
	}
}

func bundleFilename(number string) string {
	return "facturx_" + safeFilename(number) + ".zip"
}
