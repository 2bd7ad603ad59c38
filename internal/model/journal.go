package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a named, per-entity grouping of transactions. It is a
// permissive container: rejection is a boolean outcome, never an error.
// The Ledger is the validator of record.
type Journal struct {
	ID       string
	Name     string
	EntityID string

	txs  []*Transaction
	byID map[string]*Transaction
}

// NewJournal returns an empty journal for an entity.
func NewJournal(id, name, entityID string) (*Journal, error) {
	if id == "" {
		return nil, fmt.Errorf("journal id is required")
	}
	if entityID == "" {
		return nil, fmt.Errorf("journal %s: entity id is required", id)
	}
	return &Journal{
		ID:       id,
		Name:     name,
		EntityID: entityID,
		byID:     make(map[string]*Transaction),
	}, nil
}

// AddTransaction appends tx if it belongs to this journal's entity,
// balances, and has not been added before.
func (j *Journal) AddTransaction(tx *Transaction) bool {
	if tx == nil || tx.EntityID != j.EntityID || !tx.IsBalanced() {
		return false
	}
	if _, seen := j.byID[tx.ID]; seen {
		return false
	}
	j.txs = append(j.txs, tx)
	j.byID[tx.ID] = tx
	return true
}

// Get returns a transaction by id.
func (j *Journal) Get(id string) (*Transaction, bool) {
	tx, ok := j.byID[id]
	return tx, ok
}

// Transactions returns the journal's transactions in insertion order.
func (j *Journal) Transactions() []*Transaction {
	return append([]*Transaction(nil), j.txs...)
}

// Len returns the number of transactions in the journal.
func (j *Journal) Len() int {
	return len(j.txs)
}

// InRange returns transactions dated within [from, to] inclusive.
func (j *Journal) InRange(from, to time.Time) []*Transaction {
	var result []*Transaction
	for _, tx := range j.txs {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// TotalDebits sums debit lines across all transactions.
func (j *Journal) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range j.txs {
		total = total.Add(tx.TotalDebits())
	}
	return total
}

// TotalCredits sums credit lines across all transactions.
func (j *Journal) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range j.txs {
		total = total.Add(tx.TotalCredits())
	}
	return total
}
