package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pollfund/backend/internal/model"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

// GetByID は ID でプロジェクトを取得する。子アイテムの ID 一覧も読み込む。
func (r *PgProjectRepository) GetByID(ctx context.Context, id uint64) (*model.Project, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var p model.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, creator, active, created_at
		 FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Creator, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Child item ids come from the items table; item ids are assigned in
	// creation order, so ordering by id preserves append order.
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind FROM items WHERE project_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var itemID uint64
		var kind string
		if err := rows.Scan(&itemID, &kind); err != nil {
			return nil, err
		}
		if model.ItemKind(kind) == model.KindSurvey {
			p.SurveyIDs = append(p.SurveyIDs, itemID)
		} else {
			p.PollIDs = append(p.PollIDs, itemID)
		}
	}
	return &p, rows.Err()
}

// Create はプロジェクトを作成する（ID はアプリ側で割り当て済み）
func (r *PgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, description, creator, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Creator, p.Active, p.CreatedAt,
	)
	return err
}

// Update はプロジェクトの可変フィールドを上書きする
func (r *PgProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, active = $3 WHERE id = $4`,
		p.Name, p.Description, p.Active, p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCreator は作成者のプロジェクト一覧を作成順で返す
func (r *PgProjectRepository) ListByCreator(ctx context.Context, creator string) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, creator, active, created_at
		 FROM projects WHERE creator = $1 ORDER BY id`,
		creator,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Creator, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// MaxID は割り当て済みの最大プロジェクト ID を返す
func (r *PgProjectRepository) MaxID(ctx context.Context) (uint64, error) {
	var max uint64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM projects`).Scan(&max)
	return max, err
}
