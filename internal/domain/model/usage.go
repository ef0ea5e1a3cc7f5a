package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord attributes one completed chat request's tokens and cost to a
// user and model. One row per request, written before the response is
// acknowledged.
type UsageRecord struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	CostUSD          float64   `json:"cost_usd"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewUsageRecord(userID, model string, cost CostBreakdown) *UsageRecord {
	return &UsageRecord{
		ID:               uuid.NewString(),
		UserID:           userID,
		Model:            model,
		PromptTokens:     cost.InputTokens,
		CompletionTokens: cost.OutputTokens,
		TotalTokens:      cost.TotalTokens,
		CostUSD:          cost.CostUSD,
		CreatedAt:        time.Now(),
	}
}

// UsageSummary aggregates a user's recent usage for the dashboard cards.
type UsageSummary struct {
	TotalCostUSD float64 `json:"total_cost_usd"`
	TotalTokens  int64   `json:"total_tokens"`
	RequestCount int     `json:"request_count"`
}
