package repository

import (
	"context"
	"sync"

	"github.com/pollfund/backend/internal/model"
)

// MemEventRepository keeps notification records in memory, newest first on List.
type MemEventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
}

// NewMemEventRepository creates an empty MemEventRepository.
func NewMemEventRepository() *MemEventRepository {
	return &MemEventRepository{}
}

func (r *MemEventRepository) Insert(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *e
	r.events = append(r.events, &c)
	return nil
}

func (r *MemEventRepository) List(ctx context.Context, f EventFilter) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Event
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if f.ProjectID != 0 && e.ProjectID != f.ProjectID {
			continue
		}
		if f.ItemID != 0 && e.ItemID != f.ItemID {
			continue
		}
		c := *e
		out = append(out, &c)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}
