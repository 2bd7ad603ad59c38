// Package ledger holds the per-entity books of record. The Ledger owns the
// account set and journal set and is the only code path that mutates
// account balances.
package ledger

import (
	"sync"

	"github.com/booksmith-dev/booksmith/internal/model"
)

// Ledger is the consistency authority for one entity.
type Ledger struct {
	entityID string

	mu           sync.Mutex
	accounts     map[string]*model.Account
	accountOrder []string
	journals     map[string]*model.Journal
	recorded     []*model.Transaction
	recordedIDs  map[string]struct{}
}

// New creates an empty ledger for an entity.
func New(entityID string) *Ledger {
	return &Ledger{
		entityID:    entityID,
		accounts:    make(map[string]*model.Account),
		journals:    make(map[string]*model.Journal),
		recordedIDs: make(map[string]struct{}),
	}
}

// EntityID returns the entity the ledger belongs to.
func (l *Ledger) EntityID() string {
	return l.entityID
}

// AddAccount registers an account. A duplicate id is rejected.
func (l *Ledger) AddAccount(a *model.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[a.ID]; exists {
		return model.DuplicateEntityError{Kind: "account", ID: a.ID}
	}
	l.accounts[a.ID] = a
	l.accountOrder = append(l.accountOrder, a.ID)
	return nil
}

// Account returns a registered account by id.
func (l *Ledger) Account(id string) (*model.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[id]
	return a, ok
}

// Accounts returns all accounts in registration order.
func (l *Ledger) Accounts() []*model.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*model.Account, 0, len(l.accountOrder))
	for _, id := range l.accountOrder {
		result = append(result, l.accounts[id])
	}
	return result
}

// HasAccount reports whether an account id is registered.
func (l *Ledger) HasAccount(id string) bool {
	_, ok := l.Account(id)
	return ok
}

// AddJournal registers a journal. The journal must belong to this ledger's
// entity; a duplicate id is rejected.
func (l *Ledger) AddJournal(j *model.Journal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if j.EntityID != l.entityID {
		return model.EntityMismatchError{Want: l.entityID, Got: j.EntityID}
	}
	if _, exists := l.journals[j.ID]; exists {
		return model.DuplicateEntityError{Kind: "journal", ID: j.ID}
	}
	l.journals[j.ID] = j
	return nil
}

// Journal returns a registered journal by id.
func (l *Ledger) Journal(id string) (*model.Journal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	j, ok := l.journals[id]
	return j, ok
}

// RecordTransaction validates tx with five ordered checks and applies it
// only if every check passes:
//
//  1. tx belongs to this ledger's entity
//  2. tx balances
//  3. tx is posted
//  4. tx has not been recorded before
//  5. every line's account exists here and is active
//
// The checking pass guarantees the apply pass cannot fail, so a rejection
// leaves every account balance and the recorded list untouched.
func (l *Ledger) RecordTransaction(tx *model.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.EntityID != l.entityID {
		return model.EntityMismatchError{Want: l.entityID, Got: tx.EntityID}
	}
	if !tx.IsBalanced() {
		return model.UnbalancedTransactionError{
			TransactionID: tx.ID,
			Debits:        tx.TotalDebits().String(),
			Credits:       tx.TotalCredits().String(),
		}
	}
	if tx.Status() != model.StatusPosted {
		return model.NotPostedError{TransactionID: tx.ID, Status: tx.Status()}
	}
	if _, recorded := l.recordedIDs[tx.ID]; recorded {
		return model.DuplicateEntityError{Kind: "transaction", ID: tx.ID}
	}

	lines := tx.Lines()
	for _, line := range lines {
		acct, ok := l.accounts[line.AccountID]
		if !ok {
			return model.UnknownAccountError{AccountID: line.AccountID}
		}
		if !acct.Active {
			return model.InactiveAccountError{AccountID: line.AccountID}
		}
	}

	for _, line := range lines {
		// Cannot fail: accounts verified above, line amounts validated
		// when the lines were added.
		_ = l.accounts[line.AccountID].ApplyPosting(line.Amount, line.IsDebit)
	}

	l.recorded = append(l.recorded, tx)
	l.recordedIDs[tx.ID] = struct{}{}
	return nil
}

// Recorded returns recorded transactions in recording order.
func (l *Ledger) Recorded() []*model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*model.Transaction(nil), l.recorded...)
}

// IsRecorded reports whether a transaction id has been recorded.
func (l *Ledger) IsRecorded(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.recordedIDs[id]
	return ok
}
