package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/booksmith-dev/booksmith/internal/auditlog"
	"github.com/booksmith-dev/booksmith/internal/categorize"
	"github.com/booksmith-dev/booksmith/internal/chart"
	"github.com/booksmith-dev/booksmith/internal/config"
	"github.com/booksmith-dev/booksmith/internal/feed"
	"github.com/booksmith-dev/booksmith/internal/gitops"
	"github.com/booksmith-dev/booksmith/internal/id"
	"github.com/booksmith-dev/booksmith/internal/ledger"
	"github.com/booksmith-dev/booksmith/internal/model"
	"github.com/booksmith-dev/booksmith/internal/rules"
	"github.com/booksmith-dev/booksmith/internal/store"
)

func newImportCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Categorize and record bank feed files from import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(booksDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log, err := newLogger()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			summary, err := runImport(absDir, log)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d transactions from %d files (%d to suspense, %d duplicates skipped)\n",
				summary.Imported, summary.Files, summary.Suspense, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

// importSummary counts the outcomes of one import run.
type importSummary struct {
	Files    int
	Imported int
	Suspense int
	Skipped  int
}

func runImport(root string, log *zap.Logger) (importSummary, error) {
	var summary importSummary

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return summary, fmt.Errorf("loading config: %w", err)
	}

	led, jrnl, err := openLedger(root, cfg)
	if err != nil {
		return summary, err
	}

	engine, dropped, err := rules.LoadCatalog(filepath.Join(root, cfg.Categorization.RulesFile))
	if err != nil {
		return summary, fmt.Errorf("loading rules: %w", err)
	}
	for _, ruleID := range dropped {
		log.Warn("dropped duplicate rule", zap.String("rule_id", ruleID))
	}

	assembler := categorize.NewAssembler(engine, cfg.Entity.ID, cfg.Categorization.SuspenseAccount)
	svc := store.NewService(root)

	seen, err := auditlog.References(root)
	if err != nil {
		return summary, fmt.Errorf("loading audit references: %w", err)
	}

	files, err := feed.Scan(root)
	if err != nil {
		return summary, fmt.Errorf("scanning import dir: %w", err)
	}

	registry := feed.DefaultRegistry()
	for _, file := range files {
		binding, ok := bindingFor(cfg, file.Name)
		if !ok {
			log.Warn("no bank account binding for file", zap.String("file", file.Name))
			continue
		}

		parser := registry.Get(binding.Format)
		if parser == nil {
			log.Warn("no parser for format",
				zap.String("file", file.Name), zap.String("format", binding.Format))
			continue
		}

		imported, err := importFile(root, file, parser, binding, assembler, led, jrnl, svc, seen, log, &summary)
		if err != nil {
			return summary, err
		}
		if imported {
			summary.Files++
		}
	}

	if cfg.Git.AutoCommit && summary.Imported > 0 {
		hash, err := gitops.Snapshot(root,
			fmt.Sprintf("import: %d transactions", summary.Imported),
			cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return summary, fmt.Errorf("committing snapshot: %w", err)
		}
		log.Info("committed books snapshot", zap.String("commit", hash))
	}

	if tb := led.TrialBalance(); !tb.Balanced() {
		log.Warn("trial balance out of balance",
			zap.String("difference", tb.Difference().String()))
	}

	return summary, nil
}

func importFile(root string, file feed.FileInfo, parser feed.Parser, binding config.BankAccount,
	assembler *categorize.Assembler, led *ledger.Ledger, jrnl *model.Journal, svc *store.Service,
	seen map[string]struct{}, log *zap.Logger, summary *importSummary,
) (bool, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", file.Name, err)
	}
	items, err := parser.Parse(f)
	_ = f.Close()
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", file.Name, err)
	}

	var audits []auditlog.Entry
	for _, item := range items {
		ref, _ := item.Metadata["reference"].(string)
		if ref != "" {
			if _, dup := seen[ref]; dup {
				summary.Skipped++
				continue
			}
		}

		year, month := item.Date.Year(), int(item.Date.Month())
		seq, err := svc.NextSeq(year, month)
		if err != nil {
			return false, fmt.Errorf("next sequence for %04d-%02d: %w", year, month, err)
		}
		txID := id.FormatTransactionID(year, month, seq)

		result, err := assembler.Assemble(txID, item, binding.AccountID)
		if err != nil {
			log.Error("assembling transaction failed",
				zap.String("file", file.Name), zap.String("description", item.Description), zap.Error(err))
			continue
		}

		if err := led.RecordTransaction(result.Transaction); err != nil {
			log.Error("recording transaction failed",
				zap.String("transaction_id", txID), zap.Error(err))
			continue
		}
		jrnl.AddTransaction(result.Transaction)

		if err := svc.AppendTransaction(result.Transaction, result.RuleID); err != nil {
			return false, fmt.Errorf("persisting transaction %s: %w", txID, err)
		}

		if ref != "" {
			seen[ref] = struct{}{}
		}

		action := "categorized"
		if result.Suspense {
			action = "suspense"
			summary.Suspense++
		}
		audits = append(audits, auditlog.Entry{
			Timestamp:     time.Now().UTC(),
			Source:        file.Name,
			Action:        action,
			RuleID:        result.RuleID,
			TransactionID: txID,
			Reference:     ref,
		})
		summary.Imported++
	}

	if len(audits) > 0 {
		if err := auditlog.Append(root, audits); err != nil {
			return false, fmt.Errorf("writing audit log: %w", err)
		}
	}

	if err := feed.MarkProcessed(root, file.Name); err != nil {
		return false, err
	}
	return true, nil
}

// openLedger builds a ledger from the chart of accounts and replays every
// stored month into it.
func openLedger(root string, cfg *config.Config) (*ledger.Ledger, *model.Journal, error) {
	defs, err := chart.Load(root)
	if err != nil {
		return nil, nil, err
	}

	led := ledger.New(cfg.Entity.ID)
	rounding := model.Rounding{Scale: cfg.Categorization.RoundingScale}
	if err := chart.Populate(led, defs, rounding); err != nil {
		return nil, nil, err
	}

	jrnl, err := model.NewJournal("general", "General Journal", cfg.Entity.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := led.AddJournal(jrnl); err != nil {
		return nil, nil, err
	}

	svc := store.NewService(root)
	if err := svc.ReplayAll(led, jrnl); err != nil {
		return nil, nil, fmt.Errorf("replaying stored postings: %w", err)
	}
	return led, jrnl, nil
}

// bindingFor picks the configured bank account for a feed file, matching on
// the account's last four digits in the file name. A single configured
// account matches any file.
func bindingFor(cfg *config.Config, fileName string) (config.BankAccount, bool) {
	for _, ba := range cfg.BankAccounts {
		if ba.LastFour != "" && strings.Contains(fileName, ba.LastFour) {
			return ba, true
		}
	}
	if len(cfg.BankAccounts) == 1 {
		return cfg.BankAccounts[0], true
	}
	return config.BankAccount{}, false
}
