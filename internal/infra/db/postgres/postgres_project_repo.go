package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ repository.ProjectRepository = (*projectRepo)(nil)

type projectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *projectRepo {
	return &projectRepo{pool: pool}
}

func (r *projectRepo) Save(ctx context.Context, tx repository.Tx, p *model.Project) error {
	const q = `
INSERT INTO projects (id, user_id, name, description, created_at)
VALUES ($1, $2, $3, $4, $5);`
	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.Name, p.Description, p.CreatedAt)
	return err
}

func (r *projectRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Project, error) {
	const q = `
SELECT id, user_id, name, description, created_at
  FROM projects
 WHERE id=$1
 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var p model.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *projectRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Project, error) {
	const q = `
SELECT id, user_id, name, description, created_at
  FROM projects
 WHERE user_id=$1
 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *projectRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM projects WHERE id=$1;`, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
