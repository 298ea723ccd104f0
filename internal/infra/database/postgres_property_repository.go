// internal/infra/database/postgres_property_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rent_tracker/internal/domain/property"
)

var ErrPropertyNotFound = fmt.Errorf("property not found")

type PostgresPropertyRepository struct {
	db *sql.DB
}

func NewPostgresPropertyRepository(db *sql.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

const propertyColumns = `id, user_id, property_address, tenant_name, tenant_email,
	rent_amount, rent_frequency, rent_due_day_of_week, rent_due_day, anchor_date,
	bank_statement_keyword, send_tenant_reminder, is_active, created_at, updated_at`

func (r *PostgresPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	query := `INSERT INTO properties (user_id, property_address, tenant_name, tenant_email,
                rent_amount, rent_frequency, rent_due_day_of_week, rent_due_day, anchor_date,
                bank_statement_keyword, send_tenant_reminder, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Address, p.TenantName, p.TenantEmail,
		p.RentAmount.String(), p.Frequency, int(p.DueWeekday), p.DueDay, nullDate(p.AnchorDate),
		p.Keyword, p.SendTenantReminder, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating property: %w", err)
	}
	return nil
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id int64) (*property.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error getting property by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	query := `UPDATE properties SET
                property_address = $2, tenant_name = $3, tenant_email = $4, rent_amount = $5,
                rent_frequency = $6, rent_due_day_of_week = $7, rent_due_day = $8, anchor_date = $9,
                bank_statement_keyword = $10, send_tenant_reminder = $11, is_active = $12,
                updated_at = NOW()
              WHERE id = $1
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Address, p.TenantName, p.TenantEmail, p.RentAmount.String(),
		p.Frequency, int(p.DueWeekday), p.DueDay, nullDate(p.AnchorDate),
		p.Keyword, p.SendTenantReminder, p.IsActive,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("error updating property: %w", err)
	}
	return nil
}

func (r *PostgresPropertyRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*property.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
              WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at`
	return r.queryProperties(ctx, query, userID)
}

func (r *PostgresPropertyRepository) ListByUser(ctx context.Context, userID int64) ([]*property.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
              WHERE user_id = $1 ORDER BY created_at`
	return r.queryProperties(ctx, query, userID)
}

func (r *PostgresPropertyRepository) queryProperties(ctx context.Context, query string, args ...any) ([]*property.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer rows.Close()

	var props []*property.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning property row: %w", err)
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*property.Property, error) {
	var (
		p          property.Property
		amount     string
		dueWeekday sql.NullInt64
		dueDay     sql.NullInt64
		anchor     sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Address, &p.TenantName, &p.TenantEmail,
		&amount, &p.Frequency, &dueWeekday, &dueDay, &anchor,
		&p.Keyword, &p.SendTenantReminder, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.RentAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid rent_amount for property %d: %w", p.ID, err)
	}
	p.DueWeekday = time.Weekday(dueWeekday.Int64)
	p.DueDay = int(dueDay.Int64)
	if anchor.Valid {
		p.AnchorDate = anchor.Time
	}
	return &p, nil
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
