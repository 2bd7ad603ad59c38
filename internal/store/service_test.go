package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booksmith-dev/booksmith/internal/ledger"
	"github.com/booksmith-dev/booksmith/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAccount(t *testing.T, id string, typ model.AccountType, normal model.Side) *model.Account {
	t.Helper()
	acct, err := model.NewAccount(model.AccountDef{
		ID: id, Code: id, Name: "Account " + id,
		Type: typ, NormalBalance: normal, Active: true,
	})
	require.NoError(t, err)
	return acct
}

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	led := ledger.New("acme-llc")
	require.NoError(t, led.AddAccount(testAccount(t, "1010", model.AccountTypeAsset, model.SideDebit)))
	require.NoError(t, led.AddAccount(testAccount(t, "5090", model.AccountTypeExpense, model.SideDebit)))
	return led
}

func postedTx(t *testing.T, txID, dateStr, description, amount string) *model.Transaction {
	t.Helper()
	tx, err := model.NewTransaction(txID, date(dateStr), description, "acme-llc")
	require.NoError(t, err)
	require.NoError(t, tx.AddLine(model.Line{AccountID: "5090", Amount: dec(amount), IsDebit: true}))
	require.NoError(t, tx.AddLine(model.Line{AccountID: "1010", Amount: dec(amount)}))
	ok, err := tx.Post()
	require.NoError(t, err)
	require.True(t, ok)
	return tx
}

func TestAppendAndReadMonth(t *testing.T) {
	svc := NewService(t.TempDir())
	tx := postedTx(t, "2026-01-001", "2026-01-15", "MONTHLY MAINT FEE", "25.00")
	tx.Reference = "chase_20260115_MONTHLYMAI"

	require.NoError(t, svc.AppendTransaction(tx, "bank-maintenance-fee"))

	rows, err := svc.ReadMonth(2026, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-01-001a", rows[0].LineID)
	assert.Equal(t, "5090", rows[0].AccountID)
	assert.Equal(t, "25.00", rows[0].Debit.StringFixed(2))
	assert.True(t, rows[0].Credit.IsZero())
	assert.Equal(t, "bank-maintenance-fee", rows[0].RuleID)
	assert.Equal(t, "chase_20260115_MONTHLYMAI", rows[0].Reference)
	assert.Equal(t, model.StatusPosted, rows[0].Status)

	assert.Equal(t, "2026-01-001b", rows[1].LineID)
	assert.Equal(t, "1010", rows[1].AccountID)
	assert.Equal(t, "25.00", rows[1].Credit.StringFixed(2))
}

func TestAppendTransaction_AppendsToExistingFile(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-001", "2026-01-10", "first", "10.00"), ""))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-002", "2026-01-20", "second", "20.00"), ""))

	rows, err := svc.ReadMonth(2026, 1)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2026-01-002a", rows[2].LineID)
}

func TestReadMonth_Missing(t *testing.T) {
	svc := NewService(t.TempDir())
	rows, err := svc.ReadMonth(2026, 3)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestMonths(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-02-001", "2026-02-10", "feb", "1.00"), ""))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2025-12-001", "2025-12-05", "dec", "1.00"), ""))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-001", "2026-01-15", "jan", "1.00"), ""))

	months, err := svc.Months()
	require.NoError(t, err)
	assert.Equal(t, []Month{{2025, 12}, {2026, 1}, {2026, 2}}, months)
}

func TestMonths_EmptyRoot(t *testing.T) {
	svc := NewService(t.TempDir() + "/does-not-exist")
	months, err := svc.Months()
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestNextSeq(t *testing.T) {
	svc := NewService(t.TempDir())

	seq, err := svc.NextSeq(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "empty month starts at 1")

	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-001", "2026-01-10", "a", "1.00"), ""))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-002", "2026-01-11", "b", "1.00"), ""))

	seq, err = svc.NextSeq(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, seq)
}

func TestReferences(t *testing.T) {
	svc := NewService(t.TempDir())
	tx := postedTx(t, "2026-01-001", "2026-01-15", "fee", "25.00")
	tx.Reference = "ref-1"
	require.NoError(t, svc.AppendTransaction(tx, ""))

	refs, err := svc.References(2026, 1)
	require.NoError(t, err)
	_, ok := refs["ref-1"]
	assert.True(t, ok)
	assert.Len(t, refs, 1)
}

func TestReplayMonth(t *testing.T) {
	root := t.TempDir()
	svc := NewService(root)
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-001", "2026-01-10", "fee", "25.00"), "r1"))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-002", "2026-01-20", "fee again", "10.00"), "r1"))

	led := testLedger(t)
	jrnl, err := model.NewJournal("general", "General Journal", "acme-llc")
	require.NoError(t, err)
	require.NoError(t, led.AddJournal(jrnl))

	require.NoError(t, svc.ReplayMonth(led, jrnl, 2026, 1))

	assert.Equal(t, 2, jrnl.Len())
	assert.True(t, led.IsRecorded("2026-01-001"))
	assert.True(t, led.IsRecorded("2026-01-002"))

	expense, _ := led.Account("5090")
	assert.Equal(t, "35.00", expense.Balance().StringFixed(2))

	replayed, ok := jrnl.Get("2026-01-001")
	require.True(t, ok)
	assert.Equal(t, model.StatusPosted, replayed.Status())
	assert.Equal(t, "fee", replayed.Description)
}

func TestReplayMonth_UnbalancedStoredData(t *testing.T) {
	svc := NewService(t.TempDir())

	// Hand-write a one-sided group, bypassing AppendTransaction's
	// balanced-transaction path.
	writeRawRows(t, svc, 2026, 1, []Row{{
		LineID: "2026-01-001a", Date: date("2026-01-15"), AccountID: "5090",
		Description: "broken", Debit: dec("25.00"), Status: model.StatusPosted,
	}})

	led := testLedger(t)
	err := svc.ReplayMonth(led, nil, 2026, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")
}

func TestReplayAll_ChronologicalAcrossMonths(t *testing.T) {
	svc := NewService(t.TempDir())
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-02-001", "2026-02-10", "feb", "5.00"), ""))
	require.NoError(t, svc.AppendTransaction(postedTx(t, "2026-01-001", "2026-01-10", "jan", "5.00"), ""))

	led := testLedger(t)
	require.NoError(t, svc.ReplayAll(led, nil))

	recorded := led.Recorded()
	require.Len(t, recorded, 2)
	assert.Equal(t, "2026-01-001", recorded[0].ID)
	assert.Equal(t, "2026-02-001", recorded[1].ID)
}

func writeRawRows(t *testing.T, svc *Service, year, month int, rows []Row) {
	t.Helper()
	path := svc.monthPath(year, month)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, WriteRows(f, rows))
}
