// Package config reads and writes booksmith.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at a books root.
const FileName = "booksmith.yaml"

// Config represents the top-level booksmith.yaml configuration.
type Config struct {
	Entity         EntityConfig         `yaml:"entity"`
	Fiscal         FiscalConfig         `yaml:"fiscal"`
	BankAccounts   []BankAccount        `yaml:"bank_accounts,omitempty"`
	Categorization CategorizationConfig `yaml:"categorization"`
	Git            GitConfig            `yaml:"git"`
}

// EntityConfig identifies the business entity the books belong to.
type EntityConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// BankAccount binds a bank feed to a chart-of-accounts entry.
type BankAccount struct {
	Name      string `yaml:"name"`
	Format    string `yaml:"format"` // feed parser name, e.g. "chase"
	LastFour  string `yaml:"last_four"`
	AccountID string `yaml:"account_id"`
}

// CategorizationConfig controls the rule engine and transaction assembly.
type CategorizationConfig struct {
	RulesFile       string `yaml:"rules_file"`
	SuspenseAccount string `yaml:"suspense_account"`
	RoundingScale   int32  `yaml:"rounding_scale"`
}

// GitConfig controls git snapshots of the books.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a booksmith.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new books repo.
func Default(entityID, name, entityType string) *Config {
	return &Config{
		Entity: EntityConfig{
			ID:   entityID,
			Name: name,
			Type: entityType,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Categorization: CategorizationConfig{
			RulesFile:       "rules/categorization-rules.yaml",
			SuspenseAccount: "9999",
			RoundingScale:   2,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Booksmith",
			AuthorEmail: "bot@booksmith.dev",
		},
	}
}
