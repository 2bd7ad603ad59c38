package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "draft"
	StatusPosted TransactionStatus = "posted"
	StatusVoid   TransactionStatus = "void"
)

// Line is one side of a double-entry posting. The amount is strictly
// positive; direction is carried by IsDebit.
type Line struct {
	AccountID string
	Amount    decimal.Decimal
	IsDebit   bool
	Memo      string
}

// Transaction is an atomic set of lines against accounts. Lines may change
// only while the transaction is a draft; posting requires at least two
// lines that balance.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	EntityID    string
	Reference   string
	Metadata    map[string]string

	lines  []Line
	status TransactionStatus
}

// NewTransaction returns a draft transaction with no lines.
func NewTransaction(id string, date time.Time, description, entityID string) (*Transaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction id is required")
	}
	if entityID == "" {
		return nil, fmt.Errorf("transaction %s: entity id is required", id)
	}
	return &Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		EntityID:    entityID,
		status:      StatusDraft,
	}, nil
}

// Status returns the current lifecycle state.
func (t *Transaction) Status() TransactionStatus {
	return t.status
}

// Lines returns a copy of the transaction's lines.
func (t *Transaction) Lines() []Line {
	return append([]Line(nil), t.lines...)
}

// AddLine appends a line while the transaction is still a draft.
func (t *Transaction) AddLine(line Line) error {
	if t.status != StatusDraft {
		return ImmutableTransactionError{TransactionID: t.ID, Status: t.status}
	}
	if line.AccountID == "" {
		return fmt.Errorf("transaction %s: line account id is required", t.ID)
	}
	if !line.Amount.IsPositive() {
		return fmt.Errorf("transaction %s: line amount must be positive, got %s", t.ID, line.Amount)
	}
	t.lines = append(t.lines, line)
	return nil
}

// RemoveLine deletes the line at index i while the transaction is a draft.
func (t *Transaction) RemoveLine(i int) error {
	if t.status != StatusDraft {
		return ImmutableTransactionError{TransactionID: t.ID, Status: t.status}
	}
	if i < 0 || i >= len(t.lines) {
		return fmt.Errorf("transaction %s: line index %d out of range", t.ID, i)
	}
	t.lines = append(t.lines[:i], t.lines[i+1:]...)
	return nil
}

// TotalDebits sums the amounts of all debit lines.
func (t *Transaction) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.lines {
		if line.IsDebit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// TotalCredits sums the amounts of all credit lines.
func (t *Transaction) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.lines {
		if !line.IsDebit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// IsBalanced reports whether debit and credit lines sum to the same amount.
func (t *Transaction) IsBalanced() bool {
	return t.TotalDebits().Equal(t.TotalCredits())
}

// Post moves the transaction from draft to posted. It returns false with no
// error when the transaction has fewer than two lines or does not balance;
// callers treat that as a routine validation outcome. Calling Post on a
// non-draft transaction is a contract violation and returns
// InvalidStateTransitionError.
func (t *Transaction) Post() (bool, error) {
	if t.status != StatusDraft {
		return false, InvalidStateTransitionError{TransactionID: t.ID, From: t.status, To: StatusPosted}
	}
	if len(t.lines) < 2 || !t.IsBalanced() {
		return false, nil
	}
	t.status = StatusPosted
	return true, nil
}

// Void moves the transaction from posted to void. Any other starting state
// is a contract violation.
func (t *Transaction) Void() error {
	if t.status != StatusPosted {
		return InvalidStateTransitionError{TransactionID: t.ID, From: t.status, To: StatusVoid}
	}
	t.status = StatusVoid
	return nil
}
