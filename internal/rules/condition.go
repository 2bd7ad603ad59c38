package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/booksmith-dev/booksmith/internal/model"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBool
)

// fieldValue is a typed view of one item field.
type fieldValue struct {
	kind fieldKind
	str  string
	num  decimal.Decimal
	b    bool
}

func stringValue(s string) fieldValue {
	return fieldValue{kind: kindString, str: s}
}

func numberValue(d decimal.Decimal) fieldValue {
	return fieldValue{kind: kindNumber, num: d}
}

func boolValue(b bool) fieldValue {
	return fieldValue{kind: kindBool, b: b}
}

const metadataPrefix = "metadata."

// itemFields maps known field names to typed accessors. This replaces
// stringly reflective dot-path lookup; only the metadata prefix reaches
// into the free-form map.
var itemFields = map[string]func(model.FeedItem) fieldValue{
	"description": func(it model.FeedItem) fieldValue { return stringValue(it.Description) },
	"amount":      func(it model.FeedItem) fieldValue { return numberValue(it.Amount) },
	"type":        func(it model.FeedItem) fieldValue { return stringValue(string(it.Type)) },
	"entityId":    func(it model.FeedItem) fieldValue { return stringValue(it.EntityID) },
	"date":        func(it model.FeedItem) fieldValue { return stringValue(it.Date.Format("2006-01-02")) },
}

// lookupField resolves a condition field against an item. The second result
// is false when the field is missing or undefined.
func lookupField(item model.FeedItem, field string) (fieldValue, bool) {
	if accessor, ok := itemFields[field]; ok {
		return accessor(item), true
	}

	path, ok := strings.CutPrefix(field, metadataPrefix)
	if !ok {
		return fieldValue{}, false
	}
	return lookupMetadata(item.Metadata, path)
}

// lookupMetadata walks a dotted path through nested metadata maps.
func lookupMetadata(meta map[string]any, path string) (fieldValue, bool) {
	if meta == nil {
		return fieldValue{}, false
	}

	keys := strings.Split(path, ".")
	var current any = meta
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return fieldValue{}, false
		}
		current, ok = m[key]
		if !ok {
			return fieldValue{}, false
		}
	}

	switch v := current.(type) {
	case nil:
		return fieldValue{}, false
	case string:
		return stringValue(v), true
	case bool:
		return boolValue(v), true
	case int:
		return numberValue(decimal.NewFromInt(int64(v))), true
	case int64:
		return numberValue(decimal.NewFromInt(v)), true
	case float64:
		return numberValue(decimal.NewFromFloat(v)), true
	case decimal.Decimal:
		return numberValue(v), true
	default:
		return stringValue(fmt.Sprint(v)), true
	}
}

// Evaluate applies the condition to item. String comparisons fold case
// unless CaseSensitive is set. Any operator other than isNotDefined
// evaluates false against a missing field.
func (c Condition) Evaluate(item model.FeedItem) bool {
	value, defined := lookupField(item, c.Field)

	switch c.Operator {
	case OpIsDefined:
		return defined
	case OpIsNotDefined:
		return !defined
	}
	if !defined {
		return false
	}

	switch c.Operator {
	case OpEquals:
		if value.kind == kindNumber {
			want, err := decimal.NewFromString(c.Value)
			return err == nil && value.num.Equal(want)
		}
		return c.foldEq(c.asString(value), c.Value)
	case OpContains:
		return strings.Contains(c.fold(c.asString(value)), c.fold(c.Value))
	case OpStartsWith:
		return strings.HasPrefix(c.fold(c.asString(value)), c.fold(c.Value))
	case OpEndsWith:
		return strings.HasSuffix(c.fold(c.asString(value)), c.fold(c.Value))
	case OpRegex:
		pattern := c.Value
		if !c.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		return err == nil && re.MatchString(c.asString(value))
	case OpGreaterThan:
		got, want, ok := c.numericPair(value)
		return ok && got.GreaterThan(want)
	case OpLessThan:
		got, want, ok := c.numericPair(value)
		return ok && got.LessThan(want)
	case OpIsTrue:
		return value.kind == kindBool && value.b
	case OpIsFalse:
		return value.kind == kindBool && !value.b
	}
	return false
}

func (c Condition) asString(v fieldValue) string {
	switch v.kind {
	case kindNumber:
		return v.num.String()
	case kindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return v.str
	}
}

func (c Condition) fold(s string) string {
	if c.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func (c Condition) foldEq(a, b string) bool {
	if c.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// numericPair coerces the field value and condition value to decimals.
func (c Condition) numericPair(v fieldValue) (got, want decimal.Decimal, ok bool) {
	switch v.kind {
	case kindNumber:
		got = v.num
	case kindString:
		var err error
		got, err = decimal.NewFromString(v.str)
		if err != nil {
			return decimal.Zero, decimal.Zero, false
		}
	default:
		return decimal.Zero, decimal.Zero, false
	}

	want, err := decimal.NewFromString(c.Value)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return got, want, true
}
