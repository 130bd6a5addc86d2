package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/registry"
	"github.com/pollfund/backend/internal/repository"
)

// projectService は ProjectService の実装
type projectService struct {
	repo   repository.ProjectRepository
	reg    *registry.Registry
	events *eventRecorder
	mu     sync.Mutex
	now    func() time.Time
}

// NewProjectService は ProjectService を生成する
func NewProjectService(repo repository.ProjectRepository, reg *registry.Registry, events repository.EventRepository) ProjectService {
	return &projectService{
		repo:   repo,
		reg:    reg,
		events: newEventRecorder(events),
		now:    time.Now,
	}
}

// Create always succeeds: no validation beyond atomic creation.
func (s *projectService) Create(ctx context.Context, name, description, creator string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &model.Project{
		ID:          s.reg.NextProjectID(),
		Name:        name,
		Description: description,
		Creator:     creator,
		CreatedAt:   s.now(),
		Active:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.events.record(ctx, &model.Event{
		Type:      model.EventProjectCreated,
		ProjectID: p.ID,
		Actor:     creator,
		Name:      name,
	})
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id uint64) (*model.Project, error) {
	if id == 0 {
		return nil, repository.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update overwrites the mutable fields in place. Creator only, active only.
func (s *projectService) Update(ctx context.Context, id uint64, name, description, caller string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Creator != caller {
		return nil, ErrForbidden
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: project is inactive", ErrInvalidState)
	}

	p.Name = name
	p.Description = description
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.events.record(ctx, &model.Event{
		Type:      model.EventProjectUpdated,
		ProjectID: p.ID,
		Actor:     caller,
		Name:      name,
	})
	return p, nil
}

// Deactivate sets active=false permanently. Deactivating an already
// inactive project silently succeeds. Child items are untouched: project
// deactivation never cascades to their lifecycle.
func (s *projectService) Deactivate(ctx context.Context, id uint64, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Creator != caller {
		return ErrForbidden
	}
	if !p.Active {
		return nil
	}

	p.Active = false
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.events.record(ctx, &model.Event{
		Type:      model.EventProjectDeactivated,
		ProjectID: p.ID,
		Actor:     caller,
		Name:      p.Name,
	})
	return nil
}

func (s *projectService) ListByCreator(ctx context.Context, creator string) ([]*model.Project, error) {
	return s.repo.ListByCreator(ctx, creator)
}
