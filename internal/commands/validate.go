package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/booksmith-dev/booksmith/internal/chart"
	"github.com/booksmith-dev/booksmith/internal/store"
)

func newValidateCommand() *cobra.Command {
	var booksDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every posting file against the books invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(booksDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runValidate(absDir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books repository directory")

	return cmd
}

func runValidate(root string, out io.Writer) error {
	defs, err := chart.Load(root)
	if err != nil {
		return err
	}
	index := chart.NewIndex(defs)

	svc := store.NewService(root)
	months, err := svc.Months()
	if err != nil {
		return err
	}

	violations := 0
	for _, m := range months {
		rows, err := svc.ReadMonth(m.Year, m.Month)
		if err != nil {
			return err
		}
		for _, verr := range store.ValidateRows(rows, index, m.Year, m.Month) {
			fmt.Fprintf(out, "%04d-%02d: %s\n", m.Year, m.Month, verr.Error())
			violations++
		}
	}

	if violations > 0 {
		return fmt.Errorf("validation failed: %d violations", violations)
	}
	fmt.Fprintf(out, "OK: %d months validated\n", len(months))
	return nil
}
