package service

import (
	"context"

	"github.com/pollfund/backend/internal/model"
)

// ProjectService はプロジェクトのライフサイクルを扱うインターフェース
type ProjectService interface {
	Create(ctx context.Context, name, description, creator string) (*model.Project, error)
	Get(ctx context.Context, id uint64) (*model.Project, error)
	Update(ctx context.Context, id uint64, name, description, caller string) (*model.Project, error)
	Deactivate(ctx context.Context, id uint64, caller string) error
	ListByCreator(ctx context.Context, creator string) ([]*model.Project, error)
}
