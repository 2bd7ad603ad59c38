package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `rules:
  - id: bank-maintenance-fee
    name: Bank maintenance fee
    active: true
    priority: 100
    conditions:
      - field: description
        operator: contains
        value: MONTHLY MAINT FEE
    action:
      account_id: "5090"
      is_debit: true
  - name: Interest income
    active: true
    priority: 90
    conditions:
      - field: description
        operator: contains
        value: INTEREST
    action:
      account_id: "4020"
      is_debit: false
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	engine, dropped, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	require.Equal(t, 2, engine.Len())

	got := engine.Rules()
	assert.Equal(t, "bank-maintenance-fee", got[0].ID)
	assert.Equal(t, 100, got[0].Priority)
	assert.Equal(t, "5090", got[0].Action.AccountID)
	assert.NotEmpty(t, got[1].ID, "missing id gets generated")
}

func TestLoadCatalog_DroppedDuplicates(t *testing.T) {
	content := `rules:
  - id: r1
    name: first
    active: true
    priority: 10
    action:
      account_id: "5010"
      is_debit: true
  - id: r1
    name: second
    active: true
    priority: 20
    action:
      account_id: "5020"
      is_debit: true
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	engine, dropped, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, dropped)
	require.Equal(t, 1, engine.Len())
	assert.Equal(t, "first", engine.Rules()[0].Name)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: {not: a list}"), 0o644))
	_, _, err = LoadCatalog(path)
	assert.Error(t, err)
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	e := NewEngine()
	require.True(t, e.AddRule(Rule{
		ID: "maint", Name: "Bank maintenance fee", Active: true, Priority: 100,
		Conditions: []Condition{{Field: "description", Operator: OpContains, Value: "MAINT FEE"}},
		Action:     Action{AccountID: "5090", IsDebit: true},
	}))

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, SaveCatalog(path, e))

	loaded, dropped, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, e.Rules(), loaded.Rules())
}
