// Package categorize assembles balanced transactions from classified feed
// items. The rule engine proposes one side; this package supplies the bank
// side and posts the result.
package categorize

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/booksmith-dev/booksmith/internal/model"
	"github.com/booksmith-dev/booksmith/internal/rules"
)

// Assembler pairs bank-side lines with engine-proposed counter-lines for
// one entity. Items no rule claims are booked against the suspense account
// and flagged for review.
type Assembler struct {
	engine            *rules.Engine
	entityID          string
	suspenseAccountID string
}

// Result describes one assembled transaction.
type Result struct {
	Transaction *model.Transaction
	RuleID      string // empty when routed to suspense
	Suspense    bool
}

// NewAssembler creates an Assembler for an entity.
func NewAssembler(engine *rules.Engine, entityID, suspenseAccountID string) *Assembler {
	return &Assembler{
		engine:            engine,
		entityID:          entityID,
		suspenseAccountID: suspenseAccountID,
	}
}

// Assemble builds and posts a two-line transaction for item against the
// given bank account. A bank-side credit item (deposit) debits the bank
// account; a bank-side debit item credits it. An empty txID gets a
// generated one.
func (a *Assembler) Assemble(txID string, item model.FeedItem, bankAccountID string) (Result, error) {
	if txID == "" {
		txID = uuid.NewString()
	}
	if item.EntityID == "" {
		item.EntityID = a.entityID
	}

	amount := item.Amount.Abs()
	if amount.IsZero() {
		return Result{}, fmt.Errorf("item %q has zero amount", item.Description)
	}

	bankIsDebit := item.Type == model.SideCredit

	counterAccountID := a.suspenseAccountID
	counterIsDebit := !bankIsDebit
	ruleID := ""
	suspense := true
	memo := "no matching rule"

	if app, ok := a.engine.Apply(item); ok {
		counterAccountID = app.AccountID
		counterIsDebit = app.IsDebit
		ruleID = app.RuleID
		suspense = false
		memo = app.Description
	}

	tx, err := model.NewTransaction(txID, item.Date, item.Description, a.entityID)
	if err != nil {
		return Result{}, fmt.Errorf("creating transaction: %w", err)
	}
	if ref, ok := item.Metadata["reference"].(string); ok {
		tx.Reference = ref
	}

	if err := tx.AddLine(model.Line{AccountID: bankAccountID, Amount: amount, IsDebit: bankIsDebit}); err != nil {
		return Result{}, fmt.Errorf("adding bank line: %w", err)
	}
	if err := tx.AddLine(model.Line{AccountID: counterAccountID, Amount: amount, IsDebit: counterIsDebit, Memo: memo}); err != nil {
		return Result{}, fmt.Errorf("adding counter line: %w", err)
	}

	posted, err := tx.Post()
	if err != nil {
		return Result{}, fmt.Errorf("posting transaction %s: %w", txID, err)
	}
	if !posted {
		// A rule whose action lands on the same side as the bank line
		// produces a one-sided, unpostable transaction.
		return Result{}, fmt.Errorf("transaction %s for %q does not balance (rule %s)", txID, item.Description, ruleID)
	}

	return Result{Transaction: tx, RuleID: ruleID, Suspense: suspense}, nil
}
