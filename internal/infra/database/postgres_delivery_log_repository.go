// internal/infra/database/postgres_delivery_log_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"rent_tracker/internal/domain/notify"
)

// PostgresDeliveryLogRepository implements notify.DeliveryLog on the
// 'delivery_logs' table.
type PostgresDeliveryLogRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryLogRepository(db *sql.DB) *PostgresDeliveryLogRepository {
	return &PostgresDeliveryLogRepository{db: db}
}

func (r *PostgresDeliveryLogRepository) Record(ctx context.Context, rec *notify.DeliveryRecord) error {
	query := `INSERT INTO delivery_logs (recipient, subject, kind, channel, sent, error_message)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		rec.Recipient, rec.Subject, rec.Kind, rec.Channel, rec.Sent, rec.Error,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording delivery attempt: %w", err)
	}
	return nil
}
