// Package pricing holds the static per-model token pricing and the cost
// calculator. Prices are USD per million tokens.
package pricing

import (
	"fmt"

	"ai-chat-dashboard/internal/domain"
	"ai-chat-dashboard/internal/domain/model"
)

// Entry is the pricing row for one model.
type Entry struct {
	Model         string
	InputPerMTok  float64
	OutputPerMTok float64
}

// DirectModel is the only model served by the direct provider; every other
// id routes to the gateway.
const DirectModel = "claude-sonnet-4-5"

// defaultModel is the designated fallback for gateway ids missing from the
// table (cheapest model, so a stale table can never overbill).
const defaultModel = "google/gemini-2.5-flash"

// Table maps model ids to pricing entries. Read-only after construction,
// safe for concurrent use.
type Table struct {
	entries map[string]Entry
}

// NewTable builds the process-wide pricing table.
func NewTable() *Table {
	return &Table{entries: map[string]Entry{
		DirectModel:             {Model: DirectModel, InputPerMTok: 3.00, OutputPerMTok: 15.00},
		"openai/gpt-5":          {Model: "openai/gpt-5", InputPerMTok: 2.50, OutputPerMTok: 10.00},
		"google/gemini-2.5-pro": {Model: "google/gemini-2.5-pro", InputPerMTok: 1.25, OutputPerMTok: 5.00},
		defaultModel:            {Model: defaultModel, InputPerMTok: 0.075, OutputPerMTok: 0.30},
	}}
}

// Lookup returns the pricing entry for modelID. Unknown gateway ids fall
// back to the default entry. The direct-provider id must never resolve via
// the fallback: substituting another provider's unit economics would be a
// silent billing bug, so its absence is surfaced as a configuration error.
func (t *Table) Lookup(modelID string) (Entry, error) {
	if e, ok := t.entries[modelID]; ok {
		return e, nil
	}
	if modelID == DirectModel {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrModelPricingMissing, modelID)
	}
	if e, ok := t.entries[defaultModel]; ok {
		return e, nil
	}
	return Entry{}, fmt.Errorf("%w: default entry %s", domain.ErrModelPricingMissing, defaultModel)
}

// List returns all entries (admin surface).
func (t *Table) List() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	return out
}

// Cost computes the full-precision cost breakdown for one request. Total
// tokens are recomputed from the parts; rounding is left to presentation.
func Cost(inputTokens, outputTokens int, e Entry) model.CostBreakdown {
	costUSD := float64(inputTokens)*e.InputPerMTok/1e6 + float64(outputTokens)*e.OutputPerMTok/1e6
	return model.CostBreakdown{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		CostUSD:      costUSD,
	}
}
