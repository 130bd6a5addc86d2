package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/repository"
)

// eventRecorder stamps and persists notification records. Recording is
// fire-and-forget: a failed insert is logged, never surfaced to the
// caller, so indexing problems cannot fail a committed state change.
type eventRecorder struct {
	repo repository.EventRepository
	now  func() time.Time
}

func newEventRecorder(repo repository.EventRepository) *eventRecorder {
	return &eventRecorder{repo: repo, now: time.Now}
}

func (r *eventRecorder) record(ctx context.Context, e *model.Event) {
	if r == nil || r.repo == nil {
		return
	}
	e.ID = uuid.NewString()
	e.CreatedAt = r.now()
	if err := r.repo.Insert(ctx, e); err != nil {
		slog.Error("record event failed", "type", e.Type, "error", err)
	}
}
