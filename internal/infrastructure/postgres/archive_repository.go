package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-facturx/internal/domain"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

// ArchiveRepo implementación de ArchiveRepository sobre la tabla einvoice_archive.
type ArchiveRepo struct {
	q Querier
}

// NewArchiveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArchiveRepository(q Querier) *ArchiveRepo {
	return &ArchiveRepo{q: q}
}

// Create inserta el registro. La unicidad (workshop_id, invoice_number) la garantiza la base.
func (r *ArchiveRepo) Create(ctx context.Context, rec *entity.ArchiveRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO einvoice_archive
			(id, workshop_id, invoice_number, document_type, type_code, issue_date, currency,
			 net_total, vat_total, gross_total, digest, seal, xml, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, q,
		rec.ID, rec.WorkshopID, rec.InvoiceNumber, rec.DocumentType, rec.TypeCode, rec.IssueDate, rec.Currency,
		rec.NetTotal, rec.VATTotal, rec.GrossTotal, rec.Digest, nullIfEmpty(rec.Seal), rec.XML, rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s ya archivada: %w", rec.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert einvoice_archive: %w", err)
	}
	return nil
}

// GetByNumber obtiene el registro completo, XML incluido.
func (r *ArchiveRepo) GetByNumber(ctx context.Context, workshopID, invoiceNumber string) (*entity.ArchiveRecord, error) {
	const q = `
		SELECT id, workshop_id, invoice_number, document_type, type_code, issue_date, currency,
		       net_total, vat_total, gross_total, digest, seal, xml, created_at
		FROM einvoice_archive
		WHERE workshop_id = $1 AND invoice_number = $2`
	var rec entity.ArchiveRecord
	var seal *string
	err := r.q.QueryRow(ctx, q, workshopID, invoiceNumber).Scan(
		&rec.ID, &rec.WorkshopID, &rec.InvoiceNumber, &rec.DocumentType, &rec.TypeCode, &rec.IssueDate, &rec.Currency,
		&rec.NetTotal, &rec.VATTotal, &rec.GrossTotal, &rec.Digest, &seal, &rec.XML, &rec.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get einvoice_archive: %w", err)
	}
	rec.Seal = derefString(seal)
	return &rec, nil
}

// ListByWorkshop lista los registros sin el XML.
func (r *ArchiveRepo) ListByWorkshop(ctx context.Context, workshopID string, limit, offset int) ([]*entity.ArchiveRecord, error) {
	const q = `
		SELECT id, workshop_id, invoice_number, document_type, type_code, issue_date, currency,
		       net_total, vat_total, gross_total, digest, seal, created_at
		FROM einvoice_archive
		WHERE workshop_id = $1
		ORDER BY created_at DESC, invoice_number DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, q, workshopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list einvoice_archive: %w", err)
	}
	defer rows.Close()

	var list []*entity.ArchiveRecord
	for rows.Next() {
		var rec entity.ArchiveRecord
		var seal *string
		if err := rows.Scan(
			&rec.ID, &rec.WorkshopID, &rec.InvoiceNumber, &rec.DocumentType, &rec.TypeCode, &rec.IssueDate, &rec.Currency,
			&rec.NetTotal, &rec.VATTotal, &rec.GrossTotal, &rec.Digest, &seal, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan einvoice_archive: %w", err)
		}
		rec.Seal = derefString(seal)
		list = append(list, &rec)
	}
	return list, rows.Err()
}
