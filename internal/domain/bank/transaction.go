package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single bank statement line as returned by the bank API.
// Read-only to the reconciliation core.
type Transaction struct {
	ID          string
	Account     string
	Date        time.Time       // posted date
	Amount      decimal.Decimal // positive = credit, negative = debit
	Description string
}

// IsCredit reports whether money came into the account.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
