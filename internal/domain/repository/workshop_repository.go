package repository

import (
	"context"

	"github.com/jhoicas/taller-facturx/internal/domain/entity"
)

// WorkshopRepository puerto de persistencia del perfil del taller.
type WorkshopRepository interface {
	// GetByID devuelve nil, nil si el taller no existe.
	GetByID(ctx context.Context, id string) (*entity.Workshop, error)
	Upsert(ctx context.Context, w *entity.Workshop) error
}
