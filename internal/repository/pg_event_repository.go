package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pollfund/backend/internal/model"
)

// PgEventRepository は EventRepository の PostgreSQL 実装
type PgEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgEventRepository は PgEventRepository を生成する
func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

func (r *PgEventRepository) Insert(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, type, project_id, item_id, actor, amount, name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Type, e.ProjectID, e.ItemID, e.Actor, e.Amount, e.Name, e.CreatedAt,
	)
	return err
}

// List は新しい順でイベントを返す
func (r *PgEventRepository) List(ctx context.Context, f EventFilter) ([]*model.Event, error) {
	query := `SELECT id, type, project_id, item_id, actor, amount, name, created_at
	          FROM events WHERE 1=1`
	var args []any
	if f.ProjectID != 0 {
		args = append(args, f.ProjectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if f.ItemID != 0 {
		args = append(args, f.ItemID)
		query += fmt.Sprintf(" AND item_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Type, &e.ProjectID, &e.ItemID, &e.Actor, &e.Amount, &e.Name, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
