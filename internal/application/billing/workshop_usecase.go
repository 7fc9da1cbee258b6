package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
	pkgfx "github.com/jhoicas/taller-facturx/pkg/facturx"
)

// WorkshopUseCase perfil del taller emisor, fuente por defecto del vendedor.
type WorkshopUseCase struct {
	repo repository.WorkshopRepository
}

// NewWorkshopUseCase construye el caso de uso.
func NewWorkshopUseCase(repo repository.WorkshopRepository) *WorkshopUseCase {
	return &WorkshopUseCase{repo: repo}
}

// Get retorna domain.ErrNotFound si el taller aún no tiene perfil.
func (uc *WorkshopUseCase) Get(ctx context.Context, workshopID string) (*dto.WorkshopResponse, error) {
	w, err := uc.repo.GetByID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("workshop: obtener: %w", err)
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return workshopResponse(w), nil
}

// Update crea o reemplaza el perfil. Valida lo que el documento necesitará después:
// nombre, país ISO y clave SIREN/SIRET cuando el taller es francés.
func (uc *WorkshopUseCase) Update(ctx context.Context, workshopID string, in dto.WorkshopRequest) (*dto.WorkshopResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	country, err := pkgfx.NormalizeCountryCode(in.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	siret := strings.Join(strings.Fields(in.SIRET), "")
	if siret != "" && country == pkgfx.DefaultCountryCode {
		if err := pkgfx.ValidateSIRENOrSIRET(siret); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	iban, bic := strings.TrimSpace(in.IBAN), strings.TrimSpace(in.BIC)
	if (iban == "") != (bic == "") {
		return nil, fmt.Errorf("%w: iban y bic van juntos", domain.ErrInvalidInput)
	}

	w := &entity.Workshop{
		ID:          workshopID,
		Name:        name,
		SIRET:       siret,
		VATID:       strings.TrimSpace(in.VATID),
		Address:     strings.TrimSpace(in.Address),
		CountryCode: country,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		IBAN:        iban,
		BIC:         bic,
	}
	if err := uc.repo.Upsert(ctx, w); err != nil {
		return nil, fmt.Errorf("workshop: guardar: %w", err)
	}
	return workshopResponse(w), nil
}

func workshopResponse(w *entity.Workshop) *dto.WorkshopResponse {
	return &dto.WorkshopResponse{
		ID:          w.ID,
		Name:        w.Name,
		SIRET:       w.SIRET,
		VATID:       w.VATID,
		Address:     w.Address,
		CountryCode: w.CountryCode,
		Phone:       w.Phone,
		Email:       w.Email,
		IBAN:        w.IBAN,
		BIC:         w.BIC,
		UpdatedAt:   w.UpdatedAt,
	}
}
