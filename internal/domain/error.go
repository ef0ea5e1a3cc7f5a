package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrAlreadyExists         = errors.New("entity already exists")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInvalidExecContext    = errors.New("invalid executor context")
	ErrOperationFailed       = errors.New("operation failed")
	ErrReadDatabaseRow       = errors.New("failed to read database row")
	ErrModelPricingMissing   = errors.New("model pricing missing")
	ErrProviderNotConfigured = errors.New("provider credential not configured")
	ErrRateLimited           = errors.New("upstream rate limited")
	ErrPaymentRequired       = errors.New("upstream payment required")
)

// UpstreamError covers any upstream failure that is not rate limiting or
// billing: bad status, malformed body, network failure. The upstream detail
// stays server-side; callers render a generic message.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s upstream: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s upstream: http %d", e.Provider, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
