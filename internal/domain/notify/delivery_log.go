package notify

import (
	"context"
	"time"
)

// DeliveryRecord logs one send attempt, successful or not.
// Corresponds to the 'delivery_logs' table.
type DeliveryRecord struct {
	ID        int64
	Recipient string
	Subject   string
	Kind      string // e.g. "rent_received", "tenant_reminder"
	Channel   string // "email" or "telegram"
	Sent      bool
	Error     string
	CreatedAt time.Time
}

// DeliveryLog persists delivery attempts for audit. Logging failures must not
// fail the send itself.
type DeliveryLog interface {
	Record(ctx context.Context, r *DeliveryRecord) error
}
