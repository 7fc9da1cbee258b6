package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
)

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo perfiles de taller en memoria.
type WorkshopRepo struct {
	mu        sync.RWMutex
	workshops map[string]entity.Workshop
}

// NewWorkshopRepository crea el repositorio, opcionalmente con perfiles iniciales.
func NewWorkshopRepository(seed ...entity.Workshop) *WorkshopRepo {
	r := &WorkshopRepo{workshops: make(map[string]entity.Workshop, len(seed))}
	for _, w := range seed {
		r.workshops[w.ID] = w
	}
	return r
}

func (r *WorkshopRepo) GetByID(_ context.Context, id string) (*entity.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workshops[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WorkshopRepo) Upsert(_ context.Context, w *entity.Workshop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if prev, ok := r.workshops[w.ID]; ok {
		w.CreatedAt = prev.CreatedAt
	} else if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	r.workshops[w.ID] = *w
	return nil
}
