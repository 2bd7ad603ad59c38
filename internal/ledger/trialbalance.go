package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/booksmith-dev/booksmith/internal/model"
)

// Row is one account's debit/credit split in a trial balance.
type Row struct {
	AccountID string
	Code      string
	Name      string
	Type      model.AccountType
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	// Abnormal marks a balance whose sign disagreed with the account's
	// normal side; the amount is reported in the opposite column.
	Abnormal bool
}

// TrialBalance lists every account's balance split into debit and credit
// columns. For a ledger holding only balanced, posted transactions the two
// column totals agree.
type TrialBalance struct {
	EntityID     string
	Rows         []Row
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// Balanced reports whether the two column totals agree. A false result
// signals upstream data corruption the ledger did not cause; callers should
// warn rather than fail.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebits.Equal(tb.TotalCredits)
}

// Difference returns total debits minus total credits.
func (tb TrialBalance) Difference() decimal.Decimal {
	return tb.TotalDebits.Sub(tb.TotalCredits)
}

// TrialBalance derives the report from current balances, in account
// registration order. A balance on the account's normal side lands in that
// side's column; an abnormal balance is reported as a positive amount in
// the opposite column, never as a negative number.
func (l *Ledger) TrialBalance() TrialBalance {
	l.mu.Lock()
	defer l.mu.Unlock()

	tb := TrialBalance{
		EntityID:     l.entityID,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, id := range l.accountOrder {
		acct := l.accounts[id]
		balance := acct.Balance()

		row := Row{
			AccountID: acct.ID,
			Code:      acct.Code,
			Name:      acct.Name,
			Type:      acct.Type,
			Debit:     decimal.Zero,
			Credit:    decimal.Zero,
		}

		side := acct.NormalBalance
		if balance.IsNegative() {
			side = side.Opposite()
			row.Abnormal = true
		}

		amount := balance.Abs()
		if side == model.SideDebit {
			row.Debit = amount
		} else {
			row.Credit = amount
		}

		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
	}

	return tb
}
