package repository

import (
	"context"
	"time"

	"ai-chat-dashboard/internal/domain/model"
)

// UsageRepository is the usage-ledger port: one row per completed chat
// request. The ledger write is awaited by the chat flow, so Save failing
// fails the request rather than losing the record silently.
type UsageRepository interface {
	Save(ctx context.Context, tx Tx, rec *model.UsageRecord) error

	// ListByUser returns the user's most recent records, newest first.
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.UsageRecord, error)

	// Summarize aggregates cost/tokens/requests for a user since the
	// given time (zero time means all history).
	Summarize(ctx context.Context, tx Tx, userID string, since time.Time) (*model.UsageSummary, error)
}
