// Package memory adaptadores en memoria para desarrollo y pruebas (ARCHIVE_DRIVER=memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-facturx/internal/domain"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	"github.com/jhoicas/taller-facturx/internal/domain/repository"
)

var _ repository.ArchiveRepository = (*ArchiveRepo)(nil)

type archiveKey struct {
	workshopID string
	number     string
}

// ArchiveRepo registro de archivo en memoria. Seguro para uso concurrente.
type ArchiveRepo struct {
	mu      sync.RWMutex
	records map[archiveKey]entity.ArchiveRecord
}

// NewArchiveRepository crea un registro vacío.
func NewArchiveRepository() *ArchiveRepo {
	return &ArchiveRepo{records: make(map[archiveKey]entity.ArchiveRecord)}
}

func (r *ArchiveRepo) Create(_ context.Context, rec *entity.ArchiveRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := archiveKey{rec.WorkshopID, rec.InvoiceNumber}
	if _, exists := r.records[key]; exists {
		return fmt.Errorf("factura %s ya archivada: %w", rec.InvoiceNumber, domain.ErrDuplicate)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	stored := *rec
	stored.XML = append([]byte(nil), rec.XML...)
	r.records[key] = stored
	return nil
}

func (r *ArchiveRepo) GetByNumber(_ context.Context, workshopID, invoiceNumber string) (*entity.ArchiveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[archiveKey{workshopID, invoiceNumber}]
	if !ok {
		return nil, nil
	}
	rec.XML = append([]byte(nil), rec.XML...)
	return &rec, nil
}

func (r *ArchiveRepo) ListByWorkshop(_ context.Context, workshopID string, limit, offset int) ([]*entity.ArchiveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*entity.ArchiveRecord
	for key, rec := range r.records {
		if key.workshopID != workshopID {
			continue
		}
		rec.XML = nil
		list = append(list, &rec)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].InvoiceNumber > list[j].InvoiceNumber
	})

	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}
