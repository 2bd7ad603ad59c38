package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/booksmith-dev/booksmith/internal/chart"
	"github.com/booksmith-dev/booksmith/internal/config"
	"github.com/booksmith-dev/booksmith/internal/gitops"
	"github.com/booksmith-dev/booksmith/internal/rules"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityID string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if entityID == "" {
				entityID = slugify(name)
			}
			return runInit(absDir, entityID, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "entity id (defaults to a slug of the name)")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")

	return cmd
}

func runInit(dir, entityID, name, entityType string) error {
	dirs := []string{
		"accounts",
		"rules",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(entityID, name, entityType)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := chart.Save(dir, chart.DefaultChart(entityType)); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	engine := rules.NewEngine()
	for _, r := range starterRules() {
		engine.AddRule(r)
	}
	if err := rules.SaveCatalog(filepath.Join(dir, cfg.Categorization.RulesFile), engine); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	gitignore := "exports/\nreceipts/\n.booksmith-cache/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.Snapshot(dir, "init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s (%s)\n", name, dir, hash)
	return nil
}

// starterRules is the seed catalog every new books repo gets.
func starterRules() []rules.Rule {
	return []rules.Rule{
		{
			ID:       "bank-maintenance-fee",
			Name:     "Bank maintenance fee",
			Active:   true,
			Priority: 100,
			Conditions: []rules.Condition{
				{Field: "description", Operator: rules.OpContains, Value: "MONTHLY MAINT FEE"},
			},
			Action: rules.Action{AccountID: "5090", IsDebit: true, Description: "Bank service fee"},
		},
		{
			ID:       "interest-income",
			Name:     "Interest income",
			Active:   true,
			Priority: 90,
			Conditions: []rules.Condition{
				{Field: "description", Operator: rules.OpContains, Value: "INTEREST PAYMENT"},
				{Field: "type", Operator: rules.OpEquals, Value: "credit"},
			},
			Action: rules.Action{AccountID: "4010", IsDebit: false, Description: "Interest earned"},
		},
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, s)
	return strings.Trim(s, "-")
}
