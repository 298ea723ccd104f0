package property

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Property entities.
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id int64) (*Property, error)
	Update(ctx context.Context, p *Property) error
	// ListActiveByUser returns the active properties owned by a landlord,
	// ordered by creation time for deterministic batch runs.
	ListActiveByUser(ctx context.Context, userID int64) ([]*Property, error)
	ListByUser(ctx context.Context, userID int64) ([]*Property, error) // includes inactive, for admin purposes
}
