package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/booksmith-dev/booksmith/internal/id"
)

// ValidationError describes a single posting-file invariant violation.
type ValidationError struct {
	Invariant   int
	LineID      string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.LineID, e.Description)
}

// AccountChecker tests whether an account id exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

// ValidateRows enforces 6 invariants on a month's posting rows:
//
//  1. transaction groups balance (sum(debits) == sum(credits) per group)
//  2. exactly one of debit/credit per row
//  3. every row references a known account
//  4. every date falls within the month
//  5. transaction sequences are contiguous 1..N
//  6. amounts carry at most 2 decimal places
func ValidateRows(rows []Row, accounts AccountChecker, year, month int) []ValidationError {
	var errs []ValidationError

	groups := make(map[string][]Row)
	var order []string
	for _, row := range rows {
		g := id.TransactionGroup(row.LineID)
		if _, seen := groups[g]; !seen {
			order = append(order, g)
		}
		groups[g] = append(groups[g], row)
	}

	for _, g := range order {
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, row := range groups[g] {
			totalDebit = totalDebit.Add(row.Debit)
			totalCredit = totalCredit.Add(row.Credit)
		}
		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Invariant:   1,
				LineID:      g,
				Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	hundred := decimal.NewFromInt(100)
	for _, row := range rows {
		hasDebit := !row.Debit.IsZero()
		hasCredit := !row.Credit.IsZero()
		if hasDebit == hasCredit {
			errs = append(errs, ValidationError{
				Invariant:   2,
				LineID:      row.LineID,
				Description: "row must have exactly one of debit or credit",
			})
		}

		if !accounts.Exists(row.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				LineID:      row.LineID,
				Description: fmt.Sprintf("unknown account %s", row.AccountID),
			})
		}

		if row.Date.Year() != year || int(row.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   4,
				LineID:      row.LineID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", row.Date.Format(dateFormat), year, month),
			})
		}

		if hasDebit && !row.Debit.Mul(hundred).Equal(row.Debit.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   6,
				LineID:      row.LineID,
				Description: fmt.Sprintf("debit %s has more than 2 decimal places", row.Debit),
			})
		}
		if hasCredit && !row.Credit.Mul(hundred).Equal(row.Credit.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   6,
				LineID:      row.LineID,
				Description: fmt.Sprintf("credit %s has more than 2 decimal places", row.Credit),
			})
		}
	}

	seqSeen := make(map[int]bool)
	for _, row := range rows {
		_, _, seq, err := id.ParseTransactionID(row.LineID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   5,
				LineID:      row.LineID,
				Description: fmt.Sprintf("invalid line id: %v", err),
			})
			continue
		}
		seqSeen[seq] = true
	}
	if len(seqSeen) > 0 {
		for i := 1; i <= len(seqSeen); i++ {
			if !seqSeen[i] {
				errs = append(errs, ValidationError{
					Invariant:   5,
					LineID:      fmt.Sprintf("seq %d", i),
					Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
				})
			}
		}
	}

	return errs
}
