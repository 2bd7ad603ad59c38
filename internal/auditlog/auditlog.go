// Package auditlog keeps a CSV trail of categorization decisions.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the categorization audit log.
type Entry struct {
	Timestamp     time.Time
	Source        string // feed file the item came from
	Action        string // "categorized" or "suspense"
	RuleID        string
	TransactionID string
	Reference     string
	CommitHash    string
}

// Header is the CSV header for categorization-log.csv.
const Header = "timestamp,source,action,rule_id,transaction_id,reference,commit_hash"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/categorization-log.csv"
	colTimestamp = 0
	colSource    = 1
	colAction    = 2
	colRuleID    = 3
	colTxID      = 4
	colReference = 5
	colCommit    = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colAction] = e.Action
	row[colRuleID] = e.RuleID
	row[colTxID] = e.TransactionID
	row[colReference] = e.Reference
	row[colCommit] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:     ts,
		Source:        record[colSource],
		Action:        record[colAction],
		RuleID:        record[colRuleID],
		TransactionID: record[colTxID],
		Reference:     record[colReference],
		CommitHash:    record[colCommit],
	}, nil
}

// Append writes entries to <root>/logs/categorization-log.csv, creating the
// file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/categorization-log.csv.
// Returns nil if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// References returns the set of feed references that already have an audit
// entry, for import dedupe.
func References(root string) (map[string]struct{}, error) {
	entries, err := Read(root)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Reference != "" {
			refs[e.Reference] = struct{}{}
		}
	}
	return refs, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
