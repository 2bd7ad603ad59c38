package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/booksmith-dev/booksmith/internal/config"
	"github.com/booksmith-dev/booksmith/internal/ledger"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reports over the books",
	}
	reportCmd.AddCommand(newTrialBalanceCommand())
	return reportCmd
}

func newTrialBalanceCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
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

			return runTrialBalance(absDir, cmd.OutOrStdout(), log)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

func runTrialBalance(root string, out io.Writer, log *zap.Logger) error {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	led, _, err := openLedger(root, cfg)
	if err != nil {
		return err
	}

	tb := led.TrialBalance()
	writeTrialBalance(out, tb)

	if !tb.Balanced() {
		log.Warn("trial balance out of balance",
			zap.String("difference", tb.Difference().String()))
	}
	return nil
}

func writeTrialBalance(out io.Writer, tb ledger.TrialBalance) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tACCOUNT\tDEBIT\tCREDIT\t")
	for _, row := range tb.Rows {
		name := row.Name
		if row.Abnormal {
			// Abnormal balances sit on the opposite column; flag them.
			name += " (!)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			row.Code, name, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tTOTAL\t%s\t%s\t\n",
		tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2))
	_ = tw.Flush()
}
