// internal/infra/database/postgres_ledger_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rent_tracker/internal/domain/ledger"
	"rent_tracker/internal/domain/reconcile"
)

var ErrLedgerEntryNotFound = fmt.Errorf("cycle ledger entry not found")

// PostgresLedgerRepository implements ledger.Ledger on the 'cycle_ledger'
// table, whose (property_id, due_date) unique constraint provides the atomic
// create-if-absent the at-most-once notification guarantee rests on.
type PostgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

func (r *PostgresLedgerRepository) Get(ctx context.Context, propertyID int64, dueDate time.Time) (*ledger.Entry, error) {
	query := `SELECT id, property_id, due_date, outcome, notified_at, created_at
              FROM cycle_ledger WHERE property_id = $1 AND due_date = $2`
	e := ledger.Entry{}
	err := r.db.QueryRowContext(ctx, query, propertyID, reconcile.DateOnly(dueDate)).
		Scan(&e.ID, &e.PropertyID, &e.DueDate, &e.Outcome, &e.NotifiedAt, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLedgerEntryNotFound
		}
		return nil, fmt.Errorf("error getting ledger entry: %w", err)
	}
	return &e, nil
}

// Close inserts the entry with ON CONFLICT DO NOTHING. When the insert is
// suppressed another writer already closed the cycle; the stored winner is
// read back and returned so the caller can yield to it.
func (r *PostgresLedgerRepository) Close(ctx context.Context, e *ledger.Entry) (*ledger.Entry, bool, error) {
	query := `INSERT INTO cycle_ledger (property_id, due_date, outcome, notified_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (property_id, due_date) DO NOTHING
              RETURNING id, created_at`
	dueDate := reconcile.DateOnly(e.DueDate)
	err := r.db.QueryRowContext(ctx, query, e.PropertyID, dueDate, e.Outcome, e.NotifiedAt).
		Scan(&e.ID, &e.CreatedAt)
	if err == nil {
		e.DueDate = dueDate
		return e, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("error closing cycle: %w", err)
	}

	winner, err := r.Get(ctx, e.PropertyID, dueDate)
	if err != nil {
		return nil, false, fmt.Errorf("error reading winning ledger entry: %w", err)
	}
	return winner, false, nil
}
