// Package rules classifies bank-feed items into proposed account postings
// using a priority-ordered catalog of matching rules.
package rules

import "github.com/booksmith-dev/booksmith/internal/model"

// Operator names a condition comparison.
type Operator string

const (
	OpEquals       Operator = "equals"
	OpContains     Operator = "contains"
	OpStartsWith   Operator = "startsWith"
	OpEndsWith     Operator = "endsWith"
	OpRegex        Operator = "regex"
	OpGreaterThan  Operator = "greaterThan"
	OpLessThan     Operator = "lessThan"
	OpIsTrue       Operator = "isTrue"
	OpIsFalse      Operator = "isFalse"
	OpIsDefined    Operator = "isDefined"
	OpIsNotDefined Operator = "isNotDefined"
)

// Condition is one predicate within a rule. A rule's conditions are AND-ed.
type Condition struct {
	Field         string   `yaml:"field"`
	Operator      Operator `yaml:"operator"`
	Value         string   `yaml:"value,omitempty"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty"`
}

// Action is the posting a matched rule proposes.
type Action struct {
	AccountID   string `yaml:"account_id"`
	IsDebit     bool   `yaml:"is_debit"`
	Description string `yaml:"description,omitempty"`
}

// Rule maps feed items to a counter-posting. An empty EntityID makes the
// rule global; higher Priority evaluates first.
type Rule struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	EntityID   string      `yaml:"entity_id,omitempty"`
	Active     bool        `yaml:"active"`
	Priority   int         `yaml:"priority"`
	Conditions []Condition `yaml:"conditions,omitempty"`
	Action     Action      `yaml:"action"`
}

// Matches reports whether every condition holds for item. A rule with no
// conditions always matches.
func (r Rule) Matches(item model.FeedItem) bool {
	for _, cond := range r.Conditions {
		if !cond.Evaluate(item) {
			return false
		}
	}
	return true
}
