package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ repository.ProfileRepository = (*profileRepo)(nil)

type profileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *profileRepo {
	return &profileRepo{pool: pool}
}

func (r *profileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	const q = `
SELECT user_id, COALESCE(wallet_address, ''), updated_at
  FROM profiles
 WHERE user_id=$1
 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var p model.Profile
	if err := row.Scan(&p.UserID, &p.WalletAddress, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *profileRepo) UpsertWallet(ctx context.Context, tx repository.Tx, userID, walletAddress string) (*model.Profile, error) {
	now := time.Now()
	const q = `
INSERT INTO profiles (user_id, wallet_address, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET wallet_address=$2, updated_at=$3;`
	if _, err := execSQL(ctx, r.pool, tx, q, userID, walletAddress, now); err != nil {
		return nil, domain.ErrOperationFailed
	}
	return &model.Profile{UserID: userID, WalletAddress: walletAddress, UpdatedAt: now}, nil
}
