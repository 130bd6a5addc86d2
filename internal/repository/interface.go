package repository

import (
	"context"

	"github.com/pollfund/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ProjectRepository はプロジェクト永続化のインターフェース
type ProjectRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	ListByCreator(ctx context.Context, creator string) ([]*model.Project, error)
	// MaxID seeds the id allocator after a restart.
	MaxID(ctx context.Context) (uint64, error)
}

// ItemRepository はアイテム（ポール/サーベイ）永続化のインターフェース
type ItemRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Item, error)
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	ListByCreator(ctx context.Context, creator string) ([]*model.Item, error)
	MaxID(ctx context.Context) (uint64, error)
}

// EventFilter narrows an event listing. Zero values mean "no filter".
type EventFilter struct {
	ProjectID uint64
	ItemID    uint64
	Limit     int
}

// EventRepository は通知レコード永続化のインターフェース
type EventRepository interface {
	Insert(ctx context.Context, e *model.Event) error
	List(ctx context.Context, f EventFilter) ([]*model.Event, error)
}
