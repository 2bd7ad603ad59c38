package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booksmith-dev/booksmith/internal/model"
)

const chaseExport = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/15/2026,MONTHLY MAINT FEE,-25.00,Fee,1975.00,
CREDIT,01/20/2026,INTEREST PAYMENT,1.25,Interest,1976.25,
`

func TestChaseParse(t *testing.T) {
	items, err := (&ChaseParser{}).Parse(strings.NewReader(chaseExport))
	require.NoError(t, err)
	require.Len(t, items, 2)

	fee := items[0]
	assert.Equal(t, "MONTHLY MAINT FEE", fee.Description)
	assert.Equal(t, "-25.00", fee.Amount.StringFixed(2))
	assert.Equal(t, model.SideDebit, fee.Type, "money out is a bank-side debit")
	assert.Equal(t, "2026-01-15", fee.Date.Format("2006-01-02"))
	assert.Equal(t, "chase_20260115_MONTHLYMAI", fee.Metadata["reference"])
	assert.Equal(t, "Fee", fee.Metadata["bankType"])

	interest := items[1]
	assert.Equal(t, model.SideCredit, interest.Type)
	assert.Equal(t, "1.25", interest.Amount.StringFixed(2))
}

func TestChaseParse_HeaderOnly(t *testing.T) {
	items, err := (&ChaseParser{}).Parse(strings.NewReader(
		"Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestChaseParse_BadRows(t *testing.T) {
	badDate := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,not-a-date,X,-1.00,Fee,0,\n"
	_, err := (&ChaseParser{}).Parse(strings.NewReader(badDate))
	assert.Error(t, err)

	badAmount := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\nDEBIT,01/15/2026,X,pennies,Fee,0,\n"
	_, err = (&ChaseParser{}).Parse(strings.NewReader(badAmount))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"), "format lookup folds case")
	assert.Nil(t, r.Get("unknown"))

	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "processed"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chase_1234.csv"), []byte(chaseExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed", "old.csv"), []byte(""), 0o644))

	files, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1, "only top-level CSVs")
	assert.Equal(t, "chase_1234.csv", files[0].Name)
	assert.Positive(t, files[0].Size)
}

func TestScan_NoImportDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMarkProcessed(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chase_1234.csv"), []byte(chaseExport), 0o644))

	require.NoError(t, MarkProcessed(root, "chase_1234.csv"))

	_, err := os.Stat(filepath.Join(dir, "chase_1234.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "import", "processed", "chase_1234.csv"))
	assert.NoError(t, err)

	assert.Error(t, MarkProcessed(root, "missing.csv"))
}
