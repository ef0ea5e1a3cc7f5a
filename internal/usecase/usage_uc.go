package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-dashboard/internal/domain/model"
	"ai-chat-dashboard/internal/domain/ports/repository"
)

var _ UsageUseCase = (*usageUC)(nil)

// UsageUseCase serves the dashboard's usage tab: recent records plus the
// aggregate cards.
type UsageUseCase interface {
	Recent(ctx context.Context, userID string, limit int) ([]*model.UsageRecord, error)
	Summary(ctx context.Context, userID string) (*model.UsageSummary, error)
}

type usageUC struct {
	usage repository.UsageRepository
	cache repository.UsageSummaryCache
	log   *zerolog.Logger
}

func NewUsageUseCase(usage repository.UsageRepository, cache repository.UsageSummaryCache, logger *zerolog.Logger) *usageUC {
	return &usageUC{usage: usage, cache: cache, log: logger}
}

func (u *usageUC) Recent(ctx context.Context, userID string, limit int) ([]*model.UsageRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.usage.ListByUser(ctx, repository.NoTX, userID, limit)
}

func (u *usageUC) Summary(ctx context.Context, userID string) (*model.UsageSummary, error) {
	if u.cache != nil {
		if s, err := u.cache.Get(ctx, userID); err == nil && s != nil {
			return s, nil
		}
	}
	s, err := u.usage.Summarize(ctx, repository.NoTX, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, userID, s); err != nil {
			u.log.Warn().Err(err).Str("user_id", userID).Msg("usage cache set failed")
		}
	}
	return s, nil
}
