package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
)

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo implementación de WorkshopRepository sobre la tabla workshops.
type WorkshopRepo struct {
	q Querier
}

// NewWorkshopRepository construye el adaptador.
func NewWorkshopRepository(q Querier) *WorkshopRepo {
	return &WorkshopRepo{q: q}
}

// GetByID obtiene el perfil del taller.
func (r *WorkshopRepo) GetByID(ctx context.Context, id string) (*entity.Workshop, error) {
	const q = `
		SELECT id, name, siret, vat_id, address, country_code, phone, email, iban, bic, created_at, updated_at
		FROM workshops WHERE id = $1`
	var w entity.Workshop
	var siret, vatID, address, phone, email, iban, bic *string
	err := r.q.QueryRow(ctx, q, id).Scan(
		&w.ID, &w.Name, &siret, &vatID, &address, &w.CountryCode, &phone, &email, &iban, &bic,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	w.SIRET = derefString(siret)
	w.VATID = derefString(vatID)
	w.Address = derefString(address)
	w.Phone = derefString(phone)
	w.Email = derefString(email)
	w.IBAN = derefString(iban)
	w.BIC = derefString(bic)
	return &w, nil
}

// Upsert crea o actualiza el perfil.
func (r *WorkshopRepo) Upsert(ctx context.Context, w *entity.Workshop) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	const q = `
		INSERT INTO workshops (id, name, siret, vat_id, address, country_code, phone, email, iban, bic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, siret = EXCLUDED.siret, vat_id = EXCLUDED.vat_id,
			address = EXCLUDED.address, country_code = EXCLUDED.country_code,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			iban = EXCLUDED.iban, bic = EXCLUDED.bic, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, q,
		w.ID, w.Name, nullIfEmpty(w.SIRET), nullIfEmpty(w.VATID), nullIfEmpty(w.Address), w.CountryCode,
		nullIfEmpty(w.Phone), nullIfEmpty(w.Email), nullIfEmpty(w.IBAN), nullIfEmpty(w.BIC),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert workshop: %w", err)
	}
	return nil
}
