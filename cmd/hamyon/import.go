package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/model"
	"github.com/Veraticus/hamyon/internal/ofx"
)

func importCmd(a *app) *cobra.Command {
	var (
		incomeCategory  string
		expenseCategory string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import statement lines as transactions. Debits become expenses and
credits become income. All files are stored with a single write, so either
everything is imported or nothing is.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cats := store.Snapshot().Categories
			incomeCat, err := resolveCategory(cats, model.TypeIncome, incomeCategory)
			if err != nil {
				return err
			}
			expenseCat, err := resolveCategory(cats, model.TypeExpense, expenseCategory)
			if err != nil {
				return err
			}
			mapping := ofx.Mapping{IncomeCategoryID: incomeCat.ID, ExpenseCategoryID: expenseCat.ID}

			bar := progressbar.NewOptions(len(args),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Reading statements...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)

			parser := ofx.NewParser(slog.Default())
			var inputs []model.TransactionInput
			for _, path := range args {
				parsed, err := parseStatement(cmd, parser, path, mapping)
				if err != nil {
					_ = bar.Clear()
					return err
				}
				inputs = append(inputs, parsed...)
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())

			out := cmd.OutOrStdout()
			if dryRun {
				if err := writef(out, "%s\n", cli.FormatInfo(fmt.Sprintf("Would import %d transactions", len(inputs)))); err != nil {
					return err
				}
				preview := make([]model.Transaction, len(inputs))
				for i, in := range inputs {
					preview[i] = in.Transaction("-")
				}
				return printTransactions(out, preview, cats, a.cfg.Display.Currency)
			}

			added, err := store.ImportTransactions(ctx, inputs)
			if err != nil {
				return fmt.Errorf("failed to import transactions: %w", err)
			}
			return writef(out, "%s\n", cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %d files", len(added), len(args))))
		},
	}

	cmd.Flags().StringVar(&incomeCategory, "income-category", "", "category for credits (default: Boshqa)")
	cmd.Flags().StringVar(&expenseCategory, "expense-category", "", "category for debits (default: Boshqa)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without saving")

	return cmd
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string, mapping ofx.Mapping) ([]model.TransactionInput, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	inputs, err := parser.Parse(cmd.Context(), f, mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inputs, nil
}
