package usecase

import (
	"context"
	"fmt"
	"strings"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ ProfileUseCase = (*profileUC)(nil)

type ProfileUseCase interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)

	// LinkWallet stores the wallet address as an opaque string; address
	// formats are the identity provider's concern.
	LinkWallet(ctx context.Context, userID, walletAddress string) (*model.Profile, error)
}

type profileUC struct {
	profiles repository.ProfileRepository
}

func NewProfileUseCase(profiles repository.ProfileRepository) *profileUC {
	return &profileUC{profiles: profiles}
}

func (p *profileUC) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidArgument)
	}
	return p.profiles.FindByUserID(ctx, repository.NoTX, userID)
}

func (p *profileUC) LinkWallet(ctx context.Context, userID, walletAddress string) (*model.Profile, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if userID == "" || walletAddress == "" {
		return nil, fmt.Errorf("%w: user id and wallet address required", domain.ErrInvalidArgument)
	}
	return p.profiles.UpsertWallet(ctx, repository.NoTX, userID, walletAddress)
}
