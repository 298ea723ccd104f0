package user

import (
	"database/sql"
	"time"

	"rent_tracker/internal/domain/bank"
)

// User represents a landlord account in the system.
type User struct {
	ID             int64
	Email          string
	FirstName      string
	LastName       sql.NullString // To handle optional last name
	TelegramChatID sql.NullInt64  // optional linked Telegram chat for summaries
	AkahuAppToken  sql.NullString
	AkahuUserToken sql.NullString
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name, skipping the last name when absent.
func (u *User) FullName() string {
	if u.LastName.Valid {
		return u.FirstName + " " + u.LastName.String
	}
	return u.FirstName
}

// BankCredentials returns the user's bank API tokens.
func (u *User) BankCredentials() bank.Credentials {
	return bank.Credentials{
		AppToken:  u.AkahuAppToken.String,
		UserToken: u.AkahuUserToken.String,
	}
}

// HasBankLink reports whether the user has connected their bank account.
// Users without a link are skipped by the reconciliation batch.
func (u *User) HasBankLink() bool {
	return u.AkahuAppToken.Valid && u.AkahuUserToken.Valid &&
		u.AkahuAppToken.String != "" && u.AkahuUserToken.String != ""
}
