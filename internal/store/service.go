package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/booksmith-dev/booksmith/internal/id"
	"github.com/booksmith-dev/booksmith/internal/ledger"
	"github.com/booksmith-dev/booksmith/internal/model"
)

// Service reads and writes per-month posting files under a books root
// (<root>/YYYY/MM/postings.csv).
type Service struct {
	root string
}

// NewService creates a posting-file Service.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Month identifies one posting file.
type Month struct {
	Year  int
	Month int
}

// AppendTransaction converts a transaction's lines to rows and appends them
// to the month file for its date, creating the directory and header if new.
func (s *Service) AppendTransaction(tx *model.Transaction, ruleID string) error {
	rows := make([]Row, 0, len(tx.Lines()))
	for i, line := range tx.Lines() {
		row := Row{
			LineID:      id.FormatLineID(tx.ID, i),
			Date:        tx.Date,
			AccountID:   line.AccountID,
			Description: tx.Description,
			Reference:   tx.Reference,
			Status:      tx.Status(),
			RuleID:      ruleID,
			Notes:       line.Memo,
		}
		if line.IsDebit {
			row.Debit = line.Amount
		} else {
			row.Credit = line.Amount
		}
		rows = append(rows, row)
	}

	path := s.monthPath(tx.Date.Year(), int(tx.Date.Month()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating postings dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening postings file: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendRows(f, rows); err != nil {
		return fmt.Errorf("appending rows: %w", err)
	}
	return nil
}

// ReadMonth reads all rows for a given year/month. A missing file is an
// empty month, not an error.
func (s *Service) ReadMonth(year, month int) ([]Row, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening postings %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("reading postings %s: %w", path, err)
	}
	return rows, nil
}

// Months lists every month that has a posting file, oldest first.
func (s *Service) Months() ([]Month, error) {
	var months []Month

	years, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading books root: %w", err)
	}

	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		year, err := strconv.Atoi(y.Name())
		if err != nil {
			continue
		}
		subdirs, err := os.ReadDir(filepath.Join(s.root, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading year dir %s: %w", y.Name(), err)
		}
		for _, m := range subdirs {
			if !m.IsDir() {
				continue
			}
			month, err := strconv.Atoi(m.Name())
			if err != nil {
				continue
			}
			if _, err := os.Stat(s.monthPath(year, month)); err == nil {
				months = append(months, Month{Year: year, Month: month})
			}
		}
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months, nil
}

// NextSeq returns the next available transaction sequence for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	rows, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, row := range rows {
		_, _, seq, err := id.ParseTransactionID(row.LineID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// References returns the set of bank references already stored in a month.
func (s *Service) References(year, month int) (map[string]struct{}, error) {
	rows, err := s.ReadMonth(year, month)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{})
	for _, row := range rows {
		if row.Reference != "" {
			refs[row.Reference] = struct{}{}
		}
	}
	return refs, nil
}

// ReplayMonth rebuilds the month's transactions from stored rows, posts
// them, adds them to jrnl, and records them on l. Stored data that cannot
// round-trip (unbalanced groups, unknown accounts) surfaces as an error.
func (s *Service) ReplayMonth(l *ledger.Ledger, jrnl *model.Journal, year, month int) error {
	rows, err := s.ReadMonth(year, month)
	if err != nil {
		return err
	}

	groups := make(map[string][]Row)
	var order []string
	for _, row := range rows {
		g := id.TransactionGroup(row.LineID)
		if _, seen := groups[g]; !seen {
			order = append(order, g)
		}
		groups[g] = append(groups[g], row)
	}

	for _, g := range order {
		groupRows := groups[g]

		tx, err := model.NewTransaction(g, groupRows[0].Date, groupRows[0].Description, l.EntityID())
		if err != nil {
			return fmt.Errorf("rebuilding transaction %s: %w", g, err)
		}
		tx.Reference = groupRows[0].Reference

		for _, row := range groupRows {
			line := model.Line{AccountID: row.AccountID, Memo: row.Notes}
			if !row.Debit.IsZero() {
				line.Amount = row.Debit
				line.IsDebit = true
			} else {
				line.Amount = row.Credit
			}
			if err := tx.AddLine(line); err != nil {
				return fmt.Errorf("rebuilding transaction %s: %w", g, err)
			}
		}

		posted, err := tx.Post()
		if err != nil {
			return fmt.Errorf("posting stored transaction %s: %w", g, err)
		}
		if !posted {
			return fmt.Errorf("stored transaction %s does not balance", g)
		}

		if jrnl != nil {
			jrnl.AddTransaction(tx)
		}
		if err := l.RecordTransaction(tx); err != nil {
			return fmt.Errorf("recording stored transaction %s: %w", g, err)
		}
	}
	return nil
}

// ReplayAll replays every stored month in chronological order.
func (s *Service) ReplayAll(l *ledger.Ledger, jrnl *model.Journal) error {
	months, err := s.Months()
	if err != nil {
		return err
	}
	for _, m := range months {
		if err := s.ReplayMonth(l, jrnl, m.Year, m.Month); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "postings.csv")
}
