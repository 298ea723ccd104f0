package notify

import (
	"context"
	"errors"

	"rent_tracker/internal/domain/notify"
)

// Multi fans a notification out to several channels. Each channel gets its
// attempt even if an earlier one fails; the errors are joined.
type Multi []notify.Notifier

func (m Multi) NotifyLandlord(ctx context.Context, n notify.Notification) error {
	var errs []error
	for _, c := range m {
		if err := c.NotifyLandlord(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyTenant(ctx context.Context, n notify.Notification) error {
	var errs []error
	for _, c := range m {
		if err := c.NotifyTenant(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
