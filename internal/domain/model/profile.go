package model

import "time"

// Profile holds the per-user dashboard settings the backend owns.
// Identity itself (sign-in, sessions) is the external auth provider's;
// the wallet address is stored as an opaque string.
type Profile struct {
	UserID        string    `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	UpdatedAt     time.Time `json:"updated_at"`
}
