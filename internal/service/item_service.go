package service

import (
	"context"
	"time"

	"github.com/pollfund/backend/internal/model"
)

// ItemService はポール/サーベイのライフサイクルと資金プールを扱うインターフェース。
// すべての状態遷移はアイテム単位で直列化され、外部送金を含む操作は
// 完了まで排他される。
type ItemService interface {
	Create(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error)
	Get(ctx context.Context, id uint64) (*model.Item, error)
	Fund(ctx context.Context, id uint64, funder string, amount int64) error
	Respond(ctx context.Context, id uint64, caller string) error
	End(ctx context.Context, id uint64, caller string) error
	Cancel(ctx context.Context, id uint64, caller string) error
	ClaimReward(ctx context.Context, id uint64, caller string) (int64, error)

	HasResponded(ctx context.Context, id uint64, addr string) (bool, error)
	Responders(ctx context.Context, id uint64) ([]string, error)
	PotentialReward(ctx context.Context, id uint64) (int64, error)
	ListByCreator(ctx context.Context, creator string) ([]*model.Item, error)
}
