package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedItem is an uncategorized bank-feed line awaiting classification.
// Amount keeps the sign the bank reported; Type is the bank-side direction.
type FeedItem struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        Side
	EntityID    string
	Metadata    map[string]any
}
