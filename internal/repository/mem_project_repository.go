package repository

import (
	"context"
	"sync"

	"github.com/pollfund/backend/internal/model"
)

// MemProjectRepository is an in-memory ProjectRepository. It is the
// default store when no DATABASE_URL is configured, and the store unit
// tests run against. All methods are safe for concurrent use.
type MemProjectRepository struct {
	mu       sync.RWMutex
	projects map[uint64]*model.Project
}

// NewMemProjectRepository creates an empty MemProjectRepository.
func NewMemProjectRepository() *MemProjectRepository {
	return &MemProjectRepository{projects: make(map[uint64]*model.Project)}
}

func cloneProject(p *model.Project) *model.Project {
	c := *p
	c.PollIDs = append([]uint64(nil), p.PollIDs...)
	c.SurveyIDs = append([]uint64(nil), p.SurveyIDs...)
	return &c
}

func (r *MemProjectRepository) GetByID(ctx context.Context, id uint64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProject(p), nil
}

func (r *MemProjectRepository) Create(ctx context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *MemProjectRepository) Update(ctx context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return ErrNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *MemProjectRepository) ListByCreator(ctx context.Context, creator string) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Project
	// Ids are dense and start at 1, so iterating by id preserves creation order.
	for id := uint64(1); id <= uint64(len(r.projects)); id++ {
		if p, ok := r.projects[id]; ok && p.Creator == creator {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *MemProjectRepository) MaxID(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max uint64
	for id := range r.projects {
		if id > max {
			max = id
		}
	}
	return max, nil
}

// Ping implements repository.DB so the health endpoint works without Postgres.
func (r *MemProjectRepository) Ping(ctx context.Context) error { return nil }
