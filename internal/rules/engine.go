package rules

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/booksmith-dev/booksmith/internal/model"
)

// entry pairs a rule with its registration sequence, which breaks priority
// ties so evaluation order stays stable.
type entry struct {
	rule Rule
	seq  int
}

// Engine evaluates a rule catalog against feed items. The catalog is kept
// sorted by descending priority after every mutation.
type Engine struct {
	entries []entry
	ids     map[string]struct{}
	nextSeq int
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{ids: make(map[string]struct{})}
}

// AddRule inserts a rule, keeping the catalog priority-ordered. A duplicate
// id is a no-op and returns false.
func (e *Engine) AddRule(r Rule) bool {
	if _, exists := e.ids[r.ID]; exists {
		return false
	}
	e.ids[r.ID] = struct{}{}
	e.entries = append(e.entries, entry{rule: r, seq: e.nextSeq})
	e.nextSeq++
	sort.Slice(e.entries, func(i, j int) bool {
		if e.entries[i].rule.Priority != e.entries[j].rule.Priority {
			return e.entries[i].rule.Priority > e.entries[j].rule.Priority
		}
		return e.entries[i].seq < e.entries[j].seq
	})
	return true
}

// RemoveRule deletes a rule by id.
func (e *Engine) RemoveRule(id string) bool {
	if _, exists := e.ids[id]; !exists {
		return false
	}
	delete(e.ids, id)
	for i, en := range e.entries {
		if en.rule.ID == id {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			break
		}
	}
	return true
}

// Rules returns the catalog in evaluation order.
func (e *Engine) Rules() []Rule {
	result := make([]Rule, 0, len(e.entries))
	for _, en := range e.entries {
		result = append(result, en.rule)
	}
	return result
}

// Len returns the number of registered rules.
func (e *Engine) Len() int {
	return len(e.entries)
}

// FindMatchingRule returns the highest-priority active rule whose entity
// scope and conditions match item. First match wins.
func (e *Engine) FindMatchingRule(item model.FeedItem) (Rule, bool) {
	for _, en := range e.entries {
		r := en.rule
		if !r.Active {
			continue
		}
		if r.EntityID != "" && r.EntityID != item.EntityID {
			continue
		}
		if r.Matches(item) {
			return r, true
		}
	}
	return Rule{}, false
}

// Application is the proposed counter-posting for a matched item. It is one
// side of the eventual transaction; assembling the balancing side stays
// with the caller, keeping the engine a pure classifier.
type Application struct {
	RuleID      string
	AccountID   string
	Amount      decimal.Decimal
	IsDebit     bool
	Description string
}

// Apply matches item and builds the proposed posting from the rule's
// action. The amount is the item's absolute amount; the description
// defaults to the rule name.
func (e *Engine) Apply(item model.FeedItem) (Application, bool) {
	r, ok := e.FindMatchingRule(item)
	if !ok {
		return Application{}, false
	}

	description := r.Action.Description
	if description == "" {
		description = r.Name
	}
	return Application{
		RuleID:      r.ID,
		AccountID:   r.Action.AccountID,
		Amount:      item.Amount.Abs(),
		IsDebit:     r.Action.IsDebit,
		Description: description,
	}, true
}
