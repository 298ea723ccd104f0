package reconcile

// Outcome is the reconciliation decision for one rent cycle.
type Outcome string

const (
	// OutcomeRentReceived: a keyword-matched transaction with the exact rent
	// amount was found in the cycle's grace window.
	OutcomeRentReceived Outcome = "RENT_RECEIVED"
	// OutcomeAmountMismatch: a keyword-matched transaction was found but its
	// amount differs from the expected rent.
	OutcomeAmountMismatch Outcome = "AMOUNT_MISMATCH"
	// OutcomeRentMissed: the grace window has fully elapsed with no
	// keyword-matched transaction.
	OutcomeRentMissed Outcome = "RENT_MISSED"
	// OutcomePending: no match yet but the grace window is still open. The
	// cycle is not closed and nobody is notified.
	OutcomePending Outcome = "PENDING"
	// OutcomeFetchFailed: the bank fetch failed. Transient; the cycle stays
	// open for the next run.
	OutcomeFetchFailed Outcome = "FETCH_FAILED"
	// OutcomeSkipped: the property had no due cycle yet or an invalid
	// configuration and was not evaluated.
	OutcomeSkipped Outcome = "SKIPPED"
)

// Closes reports whether this outcome is a final decision that closes the
// cycle in the ledger. Only closed cycles are immune to re-evaluation.
func (o Outcome) Closes() bool {
	switch o {
	case OutcomeRentReceived, OutcomeAmountMismatch, OutcomeRentMissed:
		return true
	}
	return false
}
