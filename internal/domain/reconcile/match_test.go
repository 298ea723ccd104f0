package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent_tracker/internal/domain/bank"
	"rent_tracker/internal/domain/property"
)

var testGrace = Grace{DaysBefore: 2, DaysAfter: 3}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func txn(id string, amount string, desc string, posted time.Time) bank.Transaction {
	return bank.Transaction{ID: id, Amount: dec(amount), Description: desc, Date: posted}
}

func keywordProp(amount string) *property.Property {
	return &property.Property{
		ID:         1,
		RentAmount: dec(amount),
		Frequency:  property.FrequencyMonthly,
		DueDay:     1,
		Keyword:    "SMITH RENT",
	}
}

func TestMatch_NoKeywordMatchIsNoMatch(t *testing.T) {
	due := date(2025, 6, 1)
	p := keywordProp("500.00")

	// Exact amount but wrong reference must never count.
	txns := []bank.Transaction{
		txn("t1", "500.00", "JONES BOARD", due),
		txn("t2", "500.00", "SALARY", due),
	}
	res := Match(p, txns, due, testGrace)
	assert.Equal(t, ClassNoMatch, res.Classification)
	assert.Nil(t, res.Transaction)
}

func TestMatch_ExactMatch(t *testing.T) {
	due := date(2025, 6, 1)
	p := keywordProp("500.00")

	txns := []bank.Transaction{
		txn("t1", "500.00", "SMITH RENT JUN", due),
	}
	res := Match(p, txns, due, testGrace)
	require.Equal(t, ClassExactMatch, res.Classification)
	assert.Equal(t, "t1", res.Transaction.ID)
}

func TestMatch_KeywordIsCaseInsensitiveSubstring(t *testing.T) {
	due := date(2025, 6, 1)
	res := Match(keywordProp("500.00"), []bank.Transaction{
		txn("t1", "500.00", "transfer smith rent week 23", due),
	}, due, testGrace)
	assert.Equal(t, ClassExactMatch, res.Classification)
}

func TestMatch_ExactBeatsMismatch(t *testing.T) {
	due := date(2025, 6, 1)
	p := keywordProp("500.00")

	// A closer-dated mismatch must still lose to an exact-amount candidate.
	txns := []bank.Transaction{
		txn("t1", "450.00", "SMITH RENT PART", due),
		txn("t2", "500.00", "SMITH RENT", due.AddDate(0, 0, 2)),
	}
	res := Match(p, txns, due, testGrace)
	require.Equal(t, ClassExactMatch, res.Classification)
	assert.Equal(t, "t2", res.Transaction.ID)
}

func TestMatch_AmountMismatch(t *testing.T) {
	due := date(2025, 6, 1)
	res := Match(keywordProp("500.00"), []bank.Transaction{
		txn("t1", "450.00", "SMITH RENT JUN", due),
	}, due, testGrace)
	require.Equal(t, ClassAmountMismatch, res.Classification)
	assert.Equal(t, "t1", res.Transaction.ID)
}

func TestMatch_EpsilonTolerance(t *testing.T) {
	due := date(2025, 6, 1)
	p := keywordProp("500.00")

	res := Match(p, []bank.Transaction{txn("t1", "500.01", "SMITH RENT", due)}, due, testGrace)
	assert.Equal(t, ClassExactMatch, res.Classification, "one cent off still exact")

	res = Match(p, []bank.Transaction{txn("t1", "500.02", "SMITH RENT", due)}, due, testGrace)
	assert.Equal(t, ClassAmountMismatch, res.Classification)
}

func TestMatch_WindowAndCreditFilters(t *testing.T) {
	due := date(2025, 6, 10)
	p := keywordProp("500.00")

	txns := []bank.Transaction{
		txn("early", "500.00", "SMITH RENT", due.AddDate(0, 0, -3)),  // before window
		txn("late", "500.00", "SMITH RENT", due.AddDate(0, 0, 4)),    // after window
		txn("debit", "-500.00", "SMITH RENT REVERSAL", due),          // not a credit
	}
	res := Match(p, txns, due, testGrace)
	assert.Equal(t, ClassNoMatch, res.Classification)

	// The window edges themselves are inclusive.
	res = Match(p, []bank.Transaction{txn("edge", "500.00", "SMITH RENT", due.AddDate(0, 0, 3))}, due, testGrace)
	assert.Equal(t, ClassExactMatch, res.Classification)
}

func TestMatch_TieBreakClosestDateThenInputOrder(t *testing.T) {
	due := date(2025, 6, 10)
	p := keywordProp("500.00")

	txns := []bank.Transaction{
		txn("far", "500.00", "SMITH RENT A", due.AddDate(0, 0, 2)),
		txn("near", "500.00", "SMITH RENT B", due.AddDate(0, 0, 1)),
	}
	res := Match(p, txns, due, testGrace)
	assert.Equal(t, "near", res.Transaction.ID, "closest posted date wins")

	sameDay := []bank.Transaction{
		txn("first", "500.00", "SMITH RENT A", due),
		txn("second", "500.00", "SMITH RENT B", due),
	}
	res = Match(p, sameDay, due, testGrace)
	assert.Equal(t, "first", res.Transaction.ID, "date tie goes to input order")
}
