package model

// Message is one turn of a conversation as supplied by the dashboard.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ValidRole reports whether role is one the chat relay accepts.
func ValidRole(role string) bool {
	switch role {
	case "system", "user", "assistant":
		return true
	}
	return false
}

// ChatRequest is the inbound payload for a single relay round-trip.
// Model may be empty; the use case substitutes the direct-provider id.
type ChatRequest struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model"`
	UserID   string    `json:"userId"`
}

// CostBreakdown is the cost block attached to every successful chat
// response. TotalTokens is always recomputed as input+output rather than
// trusted from the upstream body.
type CostBreakdown struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}
