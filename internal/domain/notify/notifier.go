package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rent_tracker/internal/domain/property"
	"rent_tracker/internal/domain/reconcile"
	"rent_tracker/internal/domain/user"
)

// Notification is everything a delivery channel needs to render a message
// about one cycle's outcome.
type Notification struct {
	Outcome  reconcile.Outcome
	Property *property.Property
	Landlord *user.User
	DueDate  time.Time
	Expected decimal.Decimal
	// Received is the matched transaction's amount; zero for missed rent.
	Received decimal.Decimal
}

// Notifier delivers outcome notifications. Delivery is best effort: the
// engine logs failures but never retries them, because the cycle is already
// closed and a retry would risk duplicate messages.
type Notifier interface {
	NotifyLandlord(ctx context.Context, n Notification) error
	NotifyTenant(ctx context.Context, n Notification) error
}
