package reconcile

import (
	"math"
	"time"

	"rent_tracker/internal/domain/property"
)

// Cycle is one rent-due period for a property, identified by its due date.
// Start and End bound the period itself; the transaction search window is the
// due date widened by the grace tolerance (see Grace).
type Cycle struct {
	DueDate time.Time
	Start   time.Time
	End     time.Time
}

// Grace is the tolerance around a due date during which a late- or
// early-posted transaction still counts toward the cycle.
type Grace struct {
	DaysBefore int
	DaysAfter  int
}

// Window returns the inclusive transaction search window for a due date.
func (g Grace) Window(dueDate time.Time) (from, to time.Time) {
	return dueDate.AddDate(0, 0, -g.DaysBefore), dueDate.AddDate(0, 0, g.DaysAfter)
}

// Elapsed reports whether the grace window for dueDate has fully passed as of
// ref. Only then may a cycle with no match be closed as missed.
func (g Grace) Elapsed(dueDate, ref time.Time) bool {
	return DateOnly(ref).After(dueDate.AddDate(0, 0, g.DaysAfter))
}

// DateOnly truncates a time to midnight in its own location. All calendar
// arithmetic in this package works on such values; mixing in clock time would
// shift due dates across midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DueDate computes the current cycle for a property as of ref: the most
// recent due date on or before ref. ok is false when no cycle is due yet,
// which happens for a fortnightly property whose anchor date lies in the
// future; the caller skips the property for this run.
func DueDate(p *property.Property, ref time.Time) (Cycle, bool) {
	ref = DateOnly(ref)

	switch p.Frequency {
	case property.FrequencyWeekly:
		back := (int(ref.Weekday()) - int(p.DueWeekday) + 7) % 7
		due := ref.AddDate(0, 0, -back)
		return Cycle{DueDate: due, Start: due, End: due}, true

	case property.FrequencyFortnightly:
		anchor := DateOnly(p.AnchorDate)
		if ref.Before(anchor) {
			return Cycle{}, false
		}
		elapsed := daysBetween(anchor, ref)
		due := anchor.AddDate(0, 0, (elapsed/14)*14)
		return Cycle{DueDate: due, Start: due, End: due.AddDate(0, 0, 13)}, true

	case property.FrequencyMonthly:
		due := monthlyDue(ref.Year(), ref.Month(), p.DueDay, ref.Location())
		if due.After(ref) {
			// The configured day hasn't arrived this month; the open cycle
			// is last month's. Without this, a cycle whose grace window
			// straddles a month boundary could never close as missed.
			prev := ref.AddDate(0, 0, -ref.Day()) // last day of previous month
			due = monthlyDue(prev.Year(), prev.Month(), p.DueDay, ref.Location())
		}
		next := monthlyDue(due.Year(), due.Month()+1, p.DueDay, ref.Location())
		return Cycle{DueDate: due, Start: due, End: next.AddDate(0, 0, -1)}, true
	}

	return Cycle{}, false
}

// monthlyDue returns the due date for a month, clamping the configured day to
// the month's last day (day 31 in February becomes Feb 28 or 29).
func monthlyDue(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from one midnight to another. Rounding
// absorbs the hour lost or gained at a DST transition.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
