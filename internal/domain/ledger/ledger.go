package ledger

import (
	"context"
	"time"

	"rent_tracker/internal/domain/reconcile"
)

// Entry records the final decision for one rent cycle. Entries are created
// once and never updated; re-evaluating a closed cycle returns the stored
// entry instead of re-matching or re-notifying. Corresponds to the
// 'cycle_ledger' table.
type Entry struct {
	ID         int64
	PropertyID int64
	DueDate    time.Time
	Outcome    reconcile.Outcome
	NotifiedAt time.Time // when the decision was recorded
	CreatedAt  time.Time
}

// Ledger is the durable idempotency record keyed by (property id, due date).
type Ledger interface {
	// Get returns the entry for a cycle, or the not-found sentinel of the
	// backing store when the cycle is still open.
	Get(ctx context.Context, propertyID int64, dueDate time.Time) (*Entry, error)

	// Close records a decision for a cycle with create-if-absent semantics.
	// If two evaluations race, exactly one write wins: the returned entry is
	// the stored one either way, and created reports whether this call wrote
	// it. Losers must take no further action, in particular no notification.
	Close(ctx context.Context, e *Entry) (stored *Entry, created bool, err error)
}
