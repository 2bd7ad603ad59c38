// Package store persists recorded transactions as per-month CSV posting
// files and replays them into a ledger.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/booksmith-dev/booksmith/internal/model"
)

// Header is the CSV header for postings.csv.
const Header = "line_id,date,account_id,description,debit,credit,reference,status,rule_id,notes"

const (
	numFields  = 10
	dateFormat = "2006-01-02"
	colLineID  = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
	colRef     = 6
	colStatus  = 7
	colRuleID  = 8
	colNotes   = 9
)

// Row is a single posting-file row: one side of one transaction.
type Row struct {
	LineID      string // transaction id + line suffix
	Date        time.Time
	AccountID   string
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Reference   string
	Status      model.TransactionStatus
	RuleID      string // categorization rule that produced the row, if any
	Notes       string
}

// ReadRows reads all rows from a postings.csv reader.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading postings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows writes rows including the header.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendRows appends rows to an existing postings.csv writer (no header).
func AppendRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalRow converts a Row to a CSV record.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colLineID] = row.LineID
	rec[colDate] = row.Date.Format(dateFormat)
	rec[colAcctID] = row.AccountID
	rec[colDesc] = row.Description

	if !row.Debit.IsZero() {
		rec[colDebit] = row.Debit.StringFixed(2)
	}
	if !row.Credit.IsZero() {
		rec[colCredit] = row.Credit.StringFixed(2)
	}

	rec[colRef] = row.Reference
	rec[colStatus] = string(row.Status)
	rec[colRuleID] = row.RuleID
	rec[colNotes] = row.Notes
	return rec
}

// UnmarshalRow converts a CSV record to a Row.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return Row{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return Row{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return Row{
		LineID:      record[colLineID],
		Date:        date,
		AccountID:   record[colAcctID],
		Description: record[colDesc],
		Debit:       debit,
		Credit:      credit,
		Reference:   record[colRef],
		Status:      model.TransactionStatus(record[colStatus]),
		RuleID:      record[colRuleID],
		Notes:       record[colNotes],
	}, nil
}
