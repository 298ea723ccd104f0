package reconcile

import (
	"rent_tracker/internal/domain/property"
)

// Decision maps a match classification and cycle state onto the outcome to
// record and the parties to notify.
type Decision struct {
	Outcome        Outcome
	NotifyLandlord bool
	NotifyTenant   bool
}

// Decide derives the notification decision for a cycle.
//
// An exact match means rent was received; a keyword match with a different
// amount is reported as a mismatch. No match at all becomes RENT_MISSED only
// once the grace window has fully elapsed, so a property checked mid-window
// stays PENDING and a later run can still find a late-posted transaction.
// The tenant is only ever contacted for a missed payment, and only when the
// landlord enabled reminders.
func Decide(m MatchResult, windowElapsed bool, p *property.Property) Decision {
	switch m.Classification {
	case ClassExactMatch:
		return Decision{Outcome: OutcomeRentReceived, NotifyLandlord: true}
	case ClassAmountMismatch:
		return Decision{Outcome: OutcomeAmountMismatch, NotifyLandlord: true}
	}

	if !windowElapsed {
		return Decision{Outcome: OutcomePending}
	}
	return Decision{
		Outcome:        OutcomeRentMissed,
		NotifyLandlord: true,
		NotifyTenant:   p.SendTenantReminder && p.TenantEmail.Valid && p.TenantEmail.String != "",
	}
}
