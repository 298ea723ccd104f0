package bank

import (
	"context"
	"fmt"
	"time"
)

// Credentials identifies a user's account link with the bank aggregator.
type Credentials struct {
	AppToken  string
	UserToken string
}

// TransactionSource fetches statement lines for an account link over a date
// range. This decouples the reconciliation core from the bank API transport.
type TransactionSource interface {
	// Transactions returns the transactions posted in [from, to], both dates
	// inclusive, ordered as the bank returns them. Failures are reported as
	// *FetchError so callers can distinguish transient bank-side problems
	// from everything else.
	Transactions(ctx context.Context, creds Credentials, from, to time.Time) ([]Transaction, error)
}

// FetchError is a transient failure talking to the bank API. A cycle
// evaluated against a failed fetch is left open so a later run can retry.
type FetchError struct {
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("bank fetch failed: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("bank fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
