package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ repository.UsageRepository = (*usageRepo)(nil)

type usageRepo struct {
	pool *pgxpool.Pool
}

func NewUsageRepo(pool *pgxpool.Pool) *usageRepo {
	return &usageRepo{pool: pool}
}

func (r *usageRepo) Save(ctx context.Context, tx repository.Tx, rec *model.UsageRecord) error {
	const q = `
INSERT INTO token_usage (id, user_id, model, prompt_tokens, completion_tokens, total_tokens, cost_usd, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := execSQL(ctx, r.pool, tx, q,
		rec.ID, rec.UserID, rec.Model,
		rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens,
		rec.CostUSD, rec.CreatedAt)
	return err
}

func (r *usageRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.UsageRecord, error) {
	const q = `
SELECT id, user_id, model, prompt_tokens, completion_tokens, total_tokens, cost_usd, created_at
  FROM token_usage
 WHERE user_id=$1
 ORDER BY created_at DESC
 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.UsageRecord
	for rows.Next() {
		var rec model.UsageRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Model, &rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens, &rec.CostUSD, &rec.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *usageRepo) Summarize(ctx context.Context, tx repository.Tx, userID string, since time.Time) (*model.UsageSummary, error) {
	const q = `
SELECT COALESCE(SUM(cost_usd), 0), COALESCE(SUM(total_tokens), 0), COUNT(*)
  FROM token_usage
 WHERE user_id=$1 AND created_at >= $2;`
	row, err := pickRow(ctx, r.pool, tx, q, userID, since)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var s model.UsageSummary
	if err := row.Scan(&s.TotalCostUSD, &s.TotalTokens, &s.RequestCount); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return &s, nil
}
