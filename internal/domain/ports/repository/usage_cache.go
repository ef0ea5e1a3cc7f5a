package repository

import (
	"context"

	"ai-chat-dashboard/internal/domain/model"
)

// UsageSummaryCache caches the per-user usage summary between ledger
// writes. Get returns domain.ErrNotFound on a miss; Invalidate is called
// after every new usage record.
type UsageSummaryCache interface {
	Get(ctx context.Context, userID string) (*model.UsageSummary, error)
	Set(ctx context.Context, userID string, s *model.UsageSummary) error
	Invalidate(ctx context.Context, userID string) error
}
