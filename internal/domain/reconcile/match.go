package reconcile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rent_tracker/internal/domain/bank"
	"rent_tracker/internal/domain/property"
)

// Classification is the result of comparing candidate transactions against a
// property's expected keyword and amount.
type Classification string

const (
	ClassNoMatch        Classification = "NO_MATCH"
	ClassExactMatch     Classification = "EXACT_MATCH"
	ClassAmountMismatch Classification = "AMOUNT_MISMATCH"
)

// MatchResult carries the classification and, except for NO_MATCH, the
// transaction that produced it.
type MatchResult struct {
	Classification Classification
	Transaction    *bank.Transaction
}

// amountEpsilon is the currency-precision tolerance for "exact" amounts.
// Bank feeds occasionally round; one cent either way still counts.
var amountEpsilon = decimal.New(1, -2)

// Match finds the best candidate for a cycle's rent payment among the given
// transactions.
//
// The keyword is the primary discriminator: amounts legitimately vary (a
// short week, a bonus top-up) while the statement reference is the
// landlord-configured identity anchor. Amount is only compared among
// keyword-confirmed candidates, which keeps unrelated same-amount
// transactions from producing false positives.
//
// Candidates must be credits posted inside the grace window around dueDate
// and must contain the property's keyword as a case-insensitive substring.
// An exact-amount candidate always beats an amount mismatch. Within a class,
// the transaction posted closest to the due date wins; a date tie goes to the
// earliest transaction in input order, so results are deterministic.
func Match(p *property.Property, txns []bank.Transaction, dueDate time.Time, g Grace) MatchResult {
	from, to := g.Window(dueDate)
	keyword := strings.ToLower(p.Keyword)

	var exact, mismatch *bank.Transaction
	var exactDist, mismatchDist int

	for i := range txns {
		t := &txns[i]
		if !t.IsCredit() {
			continue
		}
		day := DateOnly(t.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Description), keyword) {
			continue
		}

		dist := absDays(day, dueDate)
		if t.Amount.Sub(p.RentAmount).Abs().Cmp(amountEpsilon) <= 0 {
			if exact == nil || dist < exactDist {
				exact, exactDist = t, dist
			}
		} else {
			if mismatch == nil || dist < mismatchDist {
				mismatch, mismatchDist = t, dist
			}
		}
	}

	switch {
	case exact != nil:
		return MatchResult{Classification: ClassExactMatch, Transaction: exact}
	case mismatch != nil:
		return MatchResult{Classification: ClassAmountMismatch, Transaction: mismatch}
	default:
		return MatchResult{Classification: ClassNoMatch}
	}
}

func absDays(a, b time.Time) int {
	d := daysBetween(b, a)
	if d < 0 {
		return -d
	}
	return d
}
