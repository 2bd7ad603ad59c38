package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Side is a debit or credit column.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Opposite returns the other column.
func (s Side) Opposite() Side {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// Rounding is the posting-time decimal context carried by each account.
// Amounts are quantized to Scale fractional digits with half-to-even
// rounding; no process-global decimal state is involved.
type Rounding struct {
	Scale int32
}

// DefaultRounding keeps two fractional digits (cents).
var DefaultRounding = Rounding{Scale: 2}

// Quantize rounds d to the context's scale, half to even.
func (r Rounding) Quantize(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(r.Scale)
}

// AccountDef is one chart-of-accounts row as supplied by the persistence
// collaborator.
type AccountDef struct {
	ID             string
	Code           string
	Name           string
	Type           AccountType
	Subtype        string
	ParentID       string
	ControlAccount bool
	NormalBalance  Side
	Active         bool
	Rounding       Rounding // zero value means DefaultRounding
}

// Account is a single chart-of-accounts entry with a running balance.
// The balance moves only through ApplyPosting; in normal operation the
// Ledger is the sole caller.
type Account struct {
	ID             string
	Code           string
	Name           string
	Type           AccountType
	Subtype        string
	ParentID       string
	ControlAccount bool
	NormalBalance  Side
	Active         bool

	rounding Rounding
	balance  decimal.Decimal
}

// NewAccount validates a definition and returns an account with a zero
// balance. NormalBalance is required and never derived from Type: contra
// accounts (accumulated depreciation, owner's draws) invert the type's
// usual side.
func NewAccount(def AccountDef) (*Account, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if def.Name == "" {
		return nil, fmt.Errorf("account %s: name is required", def.ID)
	}
	if !def.Type.Valid() {
		return nil, fmt.Errorf("account %s: invalid account type %q", def.ID, def.Type)
	}
	if def.NormalBalance != SideDebit && def.NormalBalance != SideCredit {
		return nil, fmt.Errorf("account %s: normal balance is required", def.ID)
	}

	rounding := def.Rounding
	if rounding == (Rounding{}) {
		rounding = DefaultRounding
	}

	return &Account{
		ID:             def.ID,
		Code:           def.Code,
		Name:           def.Name,
		Type:           def.Type,
		Subtype:        def.Subtype,
		ParentID:       def.ParentID,
		ControlAccount: def.ControlAccount,
		NormalBalance:  def.NormalBalance,
		Active:         def.Active,
		rounding:       rounding,
		balance:        decimal.Zero,
	}, nil
}

// Balance returns the current running balance. The sign is relative to the
// account's normal side: positive means the balance sits on the normal side.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// ApplyPosting applies one transaction line to the balance. For debit-normal
// accounts a debit adds and a credit subtracts; credit-normal accounts
// invert the polarity. The amount must be strictly positive.
func (a *Account) ApplyPosting(amount decimal.Decimal, isDebit bool) error {
	if !a.Active {
		return InactiveAccountError{AccountID: a.ID}
	}
	if !amount.IsPositive() {
		return fmt.Errorf("account %s: posting amount must be positive, got %s", a.ID, amount)
	}

	amount = a.rounding.Quantize(amount)
	if isDebit == (a.NormalBalance == SideDebit) {
		a.balance = a.balance.Add(amount)
	} else {
		a.balance = a.balance.Sub(amount)
	}
	return nil
}

// ResetBalance zeroes the balance. Administrative use only; postings never
// reset a balance.
func (a *Account) ResetBalance() {
	a.balance = decimal.Zero
}
