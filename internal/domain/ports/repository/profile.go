package repository

import (
	"context"

	"ai-chat-dashboard/internal/domain/model"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Profile, error)

	// UpsertWallet creates the profile row if needed and sets the wallet
	// address.
	UpsertWallet(ctx context.Context, tx Tx, userID, walletAddress string) (*model.Profile, error)
}
