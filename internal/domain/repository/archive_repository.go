package repository

import (
	"context"

	"github.com/jhoicas/taller-facturx/internal/domain/entity"
)

// ArchiveRepository puerto del registro de archivo. Es de solo inserción:
// un documento emitido no se modifica.
type ArchiveRepository interface {
	// Create devuelve domain.ErrDuplicate si el número ya existe para el taller.
	Create(ctx context.Context, rec *entity.ArchiveRecord) error
	// GetByNumber devuelve nil, nil si no existe.
	GetByNumber(ctx context.Context, workshopID, invoiceNumber string) (*entity.ArchiveRecord, error)
	// ListByWorkshop lista sin el XML, del más reciente al más antiguo.
	ListByWorkshop(ctx context.Context, workshopID string, limit, offset int) ([]*entity.ArchiveRecord, error)
}
