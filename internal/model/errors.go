package model

import "fmt"

// InactiveAccountError reports a posting attempted against an inactive account.
type InactiveAccountError struct {
	AccountID string
}

func (e InactiveAccountError) Error() string {
	return fmt.Sprintf("account %s is inactive", e.AccountID)
}

// UnknownAccountError reports a line referencing an account the ledger does not hold.
type UnknownAccountError struct {
	AccountID string
}

func (e UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account %s", e.AccountID)
}

// UnbalancedTransactionError reports a transaction whose debit and credit
// lines do not sum to the same amount.
type UnbalancedTransactionError struct {
	TransactionID string
	Debits        string
	Credits       string
}

func (e UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("transaction %s does not balance: debits %s != credits %s", e.TransactionID, e.Debits, e.Credits)
}

// ImmutableTransactionError reports a line mutation on a transaction that
// already left the draft state.
type ImmutableTransactionError struct {
	TransactionID string
	Status        TransactionStatus
}

func (e ImmutableTransactionError) Error() string {
	return fmt.Sprintf("transaction %s is %s and cannot be modified", e.TransactionID, e.Status)
}

// InvalidStateTransitionError reports a lifecycle transition the state
// machine does not allow.
type InvalidStateTransitionError struct {
	TransactionID string
	From          TransactionStatus
	To            TransactionStatus
}

func (e InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transaction %s: cannot transition from %s to %s", e.TransactionID, e.From, e.To)
}

// NotPostedError reports an attempt to record a transaction that is not posted.
type NotPostedError struct {
	TransactionID string
	Status        TransactionStatus
}

func (e NotPostedError) Error() string {
	return fmt.Sprintf("transaction %s is %s; only posted transactions may be recorded", e.TransactionID, e.Status)
}

// DuplicateEntityError reports a second registration of an already-known id.
type DuplicateEntityError struct {
	Kind string // "account", "journal", "transaction"
	ID   string
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %s id %s", e.Kind, e.ID)
}

// EntityMismatchError reports an operation that crosses entity boundaries.
type EntityMismatchError struct {
	Want string
	Got  string
}

func (e EntityMismatchError) Error() string {
	return fmt.Sprintf("entity mismatch: want %s, got %s", e.Want, e.Got)
}
