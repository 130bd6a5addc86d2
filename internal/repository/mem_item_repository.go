package repository

import (
	"context"
	"sync"

	"github.com/pollfund/backend/internal/model"
)

// MemItemRepository is an in-memory ItemRepository, safe for concurrent use.
type MemItemRepository struct {
	mu    sync.RWMutex
	items map[uint64]*model.Item
}

// NewMemItemRepository creates an empty MemItemRepository.
func NewMemItemRepository() *MemItemRepository {
	return &MemItemRepository{items: make(map[uint64]*model.Item)}
}

func (r *MemItemRepository) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item.Clone(), nil
}

func (r *MemItemRepository) Create(ctx context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *MemItemRepository) Update(ctx context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *MemItemRepository) ListByCreator(ctx context.Context, creator string) ([]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Item
	for id := uint64(1); id <= uint64(len(r.items)); id++ {
		if item, ok := r.items[id]; ok && item.Creator == creator {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (r *MemItemRepository) MaxID(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max uint64
	for id := range r.items {
		if id > max {
			max = id
		}
	}
	return max, nil
}
