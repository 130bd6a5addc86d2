package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pollfund/backend/internal/model"
)

// PgItemRepository は ItemRepository の PostgreSQL 実装
type PgItemRepository struct {
	pool *pgxpool.Pool
}

// NewPgItemRepository は PgItemRepository を生成する
func NewPgItemRepository(pool *pgxpool.Pool) *PgItemRepository {
	return &PgItemRepository{pool: pool}
}

const itemColumns = `id, kind, title, description, creator, project_id,
	created_at, end_time, status, funding_pool, total_responses`

func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	var kind, status string
	err := row.Scan(&it.ID, &kind, &it.Title, &it.Description, &it.Creator,
		&it.ProjectID, &it.CreatedAt, &it.EndTime, &status, &it.FundingPool,
		&it.TotalResponses)
	if err != nil {
		return nil, err
	}
	it.Kind = model.ItemKind(kind)
	it.Status = model.ItemStatus(status)
	return &it, nil
}

// GetByID は ID でアイテムを取得する。回答者一覧も位置順で読み込む。
func (r *PgItemRepository) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	it, err := scanItem(r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadResponders(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *PgItemRepository) loadResponders(ctx context.Context, it *model.Item) error {
	rows, err := r.pool.Query(ctx,
		`SELECT address, claimed FROM item_responders
		 WHERE item_id = $1 ORDER BY position`,
		it.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	// TotalResponses is authoritative from the items row; rebuild the
	// set/sequence pair from scratch before restoring.
	it.Responders = nil
	count := it.TotalResponses
	for rows.Next() {
		var addr string
		var claimed bool
		if err := rows.Scan(&addr, &claimed); err != nil {
			return err
		}
		it.RestoreResponder(addr, claimed)
	}
	it.TotalResponses = count
	return rows.Err()
}

// Create はアイテムを作成する（ID はアプリ側で割り当て済み）
func (r *PgItemRepository) Create(ctx context.Context, it *model.Item) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, kind, title, description, creator, project_id,
		   created_at, end_time, status, funding_pool, total_responses)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		it.ID, string(it.Kind), it.Title, it.Description, it.Creator,
		it.ProjectID, it.CreatedAt, it.EndTime, string(it.Status),
		it.FundingPool, it.TotalResponses,
	)
	return err
}

// Update はアイテムと回答者一覧を1トランザクションで保存する
func (r *PgItemRepository) Update(ctx context.Context, it *model.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE items SET status = $1, funding_pool = $2, total_responses = $3
		 WHERE id = $4`,
		string(it.Status), it.FundingPool, it.TotalResponses, it.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	for pos, addr := range it.Responders {
		_, err := tx.Exec(ctx,
			`INSERT INTO item_responders (item_id, address, position, claimed)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (item_id, address) DO UPDATE SET claimed = EXCLUDED.claimed`,
			it.ID, addr, pos, it.HasClaimed(addr),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListByCreator は作成者のアイテム一覧を作成順で返す（回答者一覧は含まない）
func (r *PgItemRepository) ListByCreator(ctx context.Context, creator string) ([]*model.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE creator = $1 ORDER BY id`,
		creator,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MaxID は割り当て済みの最大アイテム ID を返す
func (r *PgItemRepository) MaxID(ctx context.Context) (uint64, error) {
	var max uint64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM items`).Scan(&max)
	return max, err
}
