package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/booksmith-dev/booksmith/internal/ledger"
	"github.com/booksmith-dev/booksmith/internal/model"
)

const chartFile = "chart-of-accounts.csv"

// Index provides in-memory lookup over chart-of-accounts definitions.
type Index struct {
	defs []model.AccountDef
	byID map[string]model.AccountDef
}

// NewIndex builds an Index from definitions.
func NewIndex(defs []model.AccountDef) *Index {
	byID := make(map[string]model.AccountDef, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}
	return &Index{defs: defs, byID: byID}
}

// All returns all definitions.
func (x *Index) All() []model.AccountDef {
	return x.defs
}

// Get returns a definition by account id.
func (x *Index) Get(id string) (model.AccountDef, bool) {
	def, ok := x.byID[id]
	return def, ok
}

// Exists reports whether an account id is in the chart.
func (x *Index) Exists(id string) bool {
	_, ok := x.byID[id]
	return ok
}

// ByType returns all definitions of the given type.
func (x *Index) ByType(accountType model.AccountType) []model.AccountDef {
	var result []model.AccountDef
	for _, def := range x.defs {
		if def.Type == accountType {
			result = append(result, def)
		}
	}
	return result
}

// Load reads accounts/chart-of-accounts.csv from a books root.
func Load(root string) ([]model.AccountDef, error) {
	path := filepath.Join(root, "accounts", chartFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	defs, err := ReadDefs(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return defs, nil
}

// Save writes definitions to accounts/chart-of-accounts.csv under root.
func Save(root string, defs []model.AccountDef) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, chartFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteDefs(f, defs); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// Populate constructs accounts from definitions, applying rounding to each,
// and registers them on l.
func Populate(l *ledger.Ledger, defs []model.AccountDef, rounding model.Rounding) error {
	for _, def := range defs {
		def.Rounding = rounding
		acct, err := model.NewAccount(def)
		if err != nil {
			return fmt.Errorf("building account: %w", err)
		}
		if err := l.AddAccount(acct); err != nil {
			return fmt.Errorf("registering account %s: %w", def.ID, err)
		}
	}
	return nil
}
