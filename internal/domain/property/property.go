package property

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often rent falls due for a property.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
)

// Property represents a rental property configured by a landlord.
// Corresponds to the 'properties' table.
type Property struct {
	ID          int64
	UserID      int64 // owning landlord, foreign key to users.id
	Address     string
	TenantName  string
	TenantEmail sql.NullString // optional; required only when SendTenantReminder is set
	RentAmount  decimal.Decimal
	Frequency   Frequency

	// Anchor fields. Which ones apply depends on Frequency:
	// weekly and fortnightly use DueWeekday, fortnightly additionally uses
	// AnchorDate to fix the 14-day phase, monthly uses DueDay.
	DueWeekday time.Weekday
	DueDay     int       // day of month, 1..31, clamped to shorter months
	AnchorDate time.Time // epoch reference date for fortnightly cycles

	Keyword            string // case-insensitive bank statement match token
	SendTenantReminder bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ConfigError reports an invalid property configuration. The property is
// skipped for the run; other properties are unaffected.
type ConfigError struct {
	PropertyID int64
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("property %d misconfigured: %s", e.PropertyID, e.Reason)
}

// Validate checks the frequency-specific anchor fields and the shared
// invariants (positive rent, non-empty keyword). It is called before a
// property reaches the due-date calculator so that invalid configurations
// never produce a cycle.
func (p *Property) Validate() error {
	if !p.RentAmount.IsPositive() {
		return &ConfigError{PropertyID: p.ID, Reason: "rent amount must be positive"}
	}
	if strings.TrimSpace(p.Keyword) == "" {
		return &ConfigError{PropertyID: p.ID, Reason: "bank statement keyword is empty"}
	}
	switch p.Frequency {
	case FrequencyWeekly:
		if p.DueWeekday < time.Sunday || p.DueWeekday > time.Saturday {
			return &ConfigError{PropertyID: p.ID, Reason: fmt.Sprintf("invalid due weekday %d", p.DueWeekday)}
		}
	case FrequencyFortnightly:
		if p.DueWeekday < time.Sunday || p.DueWeekday > time.Saturday {
			return &ConfigError{PropertyID: p.ID, Reason: fmt.Sprintf("invalid due weekday %d", p.DueWeekday)}
		}
		if p.AnchorDate.IsZero() {
			return &ConfigError{PropertyID: p.ID, Reason: "fortnightly property has no anchor date"}
		}
	case FrequencyMonthly:
		if p.DueDay < 1 || p.DueDay > 31 {
			return &ConfigError{PropertyID: p.ID, Reason: fmt.Sprintf("due day %d outside 1..31", p.DueDay)}
		}
	default:
		return &ConfigError{PropertyID: p.ID, Reason: fmt.Sprintf("unknown frequency %q", p.Frequency)}
	}
	return nil
}
