// Package id formats and parses posting identifiers. A transaction id looks
// like "2025-01-001"; its lines get a lowercase suffix ("2025-01-001a").
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTransactionID returns a transaction id like "2025-01-001".
func FormatTransactionID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// FormatLineID returns a line id like "2025-01-001a" (line 0='a', 1='b', ...).
func FormatLineID(txID string, line int) string {
	return txID + string(rune('a'+line))
}

// ParseTransactionID parses "2025-01-001" (or a line id) into year, month,
// sequence.
func ParseTransactionID(id string) (year, month, seq int, err error) {
	base := TransactionGroup(id)

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction id format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction id %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction id %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction id %q: %w", id, err)
	}

	return year, month, seq, nil
}

// TransactionGroup strips the line suffix from a line id.
// "2025-01-001a" -> "2025-01-001"
func TransactionGroup(lineID string) string {
	if len(lineID) == 0 {
		return ""
	}
	i := len(lineID)
	for i > 0 && lineID[i-1] >= 'a' && lineID[i-1] <= 'z' {
		i--
	}
	return lineID[:i]
}
