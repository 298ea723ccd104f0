package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent_tracker/internal/domain/property"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthly(day int) *property.Property {
	return &property.Property{
		ID:         1,
		RentAmount: decimal.RequireFromString("500.00"),
		Frequency:  property.FrequencyMonthly,
		DueDay:     day,
		Keyword:    "RENT",
	}
}

func TestDueDate_Weekly(t *testing.T) {
	p := &property.Property{Frequency: property.FrequencyWeekly, DueWeekday: time.Friday}

	// 2025-06-13 is a Friday.
	cycle, ok := DueDate(p, date(2025, 6, 13))
	require.True(t, ok)
	assert.Equal(t, date(2025, 6, 13), cycle.DueDate, "due on the day itself")

	cycle, ok = DueDate(p, date(2025, 6, 16)) // Monday
	require.True(t, ok)
	assert.Equal(t, date(2025, 6, 13), cycle.DueDate, "most recent Friday on or before ref")
	assert.Equal(t, cycle.DueDate, cycle.Start)
	assert.Equal(t, cycle.DueDate, cycle.End, "weekly cycle is a single-day window")
}

func TestDueDate_Fortnightly(t *testing.T) {
	anchor := date(2025, 1, 8) // a Wednesday
	p := &property.Property{
		Frequency:  property.FrequencyFortnightly,
		DueWeekday: time.Wednesday,
		AnchorDate: anchor,
	}

	cycle, ok := DueDate(p, anchor)
	require.True(t, ok)
	assert.Equal(t, anchor, cycle.DueDate)

	// 13 days later: still the anchor cycle.
	cycle, ok = DueDate(p, date(2025, 1, 21))
	require.True(t, ok)
	assert.Equal(t, anchor, cycle.DueDate)
	assert.Equal(t, date(2025, 1, 21), cycle.End)

	// 14 days later: next cycle.
	cycle, ok = DueDate(p, date(2025, 1, 22))
	require.True(t, ok)
	assert.Equal(t, date(2025, 1, 22), cycle.DueDate)

	// Several periods on.
	cycle, ok = DueDate(p, date(2025, 3, 10))
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 5), cycle.DueDate)
}

func TestDueDate_FortnightlyBeforeAnchor(t *testing.T) {
	p := &property.Property{
		Frequency:  property.FrequencyFortnightly,
		DueWeekday: time.Wednesday,
		AnchorDate: date(2025, 6, 4),
	}
	_, ok := DueDate(p, date(2025, 5, 30))
	assert.False(t, ok, "no cycle due before the anchor epoch")
}

func TestDueDate_MonthlyClampsFebruary(t *testing.T) {
	p := monthly(31)

	cycle, ok := DueDate(p, date(2025, 2, 28)) // non-leap year
	require.True(t, ok)
	assert.Equal(t, date(2025, 2, 28), cycle.DueDate)

	cycle, ok = DueDate(p, date(2024, 2, 29)) // leap year
	require.True(t, ok)
	assert.Equal(t, date(2024, 2, 29), cycle.DueDate)

	// 30-day month.
	cycle, ok = DueDate(p, date(2025, 4, 30))
	require.True(t, ok)
	assert.Equal(t, date(2025, 4, 30), cycle.DueDate)
}

func TestDueDate_MonthlyRollsBackAcrossMonthBoundary(t *testing.T) {
	p := monthly(28)

	// Before the 28th the open cycle is the previous month's, so a grace
	// window crossing the month boundary can still close.
	cycle, ok := DueDate(p, date(2025, 3, 2))
	require.True(t, ok)
	assert.Equal(t, date(2025, 2, 28), cycle.DueDate)
	assert.Equal(t, date(2025, 3, 27), cycle.End)

	// On and after the due day the cycle is the current month's.
	cycle, ok = DueDate(p, date(2025, 3, 28))
	require.True(t, ok)
	assert.Equal(t, date(2025, 3, 28), cycle.DueDate)
}

func TestDueDate_MonthlyJanuaryRollsBackToDecember(t *testing.T) {
	cycle, ok := DueDate(monthly(31), date(2026, 1, 2))
	require.True(t, ok)
	assert.Equal(t, date(2025, 12, 31), cycle.DueDate)
}

func TestGrace_WindowAndElapsed(t *testing.T) {
	g := Grace{DaysBefore: 2, DaysAfter: 3}
	due := date(2025, 6, 1)

	from, to := g.Window(due)
	assert.Equal(t, date(2025, 5, 30), from)
	assert.Equal(t, date(2025, 6, 4), to)

	assert.False(t, g.Elapsed(due, due))
	assert.False(t, g.Elapsed(due, date(2025, 6, 4)), "last day of the window is not elapsed")
	assert.True(t, g.Elapsed(due, date(2025, 6, 5)))
}
