package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/model"
)

func addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or an expense",
	}

	cmd.AddCommand(addTypeCmd(a, model.TypeIncome))
	cmd.AddCommand(addTypeCmd(a, model.TypeExpense))

	return cmd
}

func addTypeCmd(a *app, t model.TransactionType) *cobra.Command {
	var (
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   string(t) + " AMOUNT",
		Short: "Record a new " + string(t),
		Example: fmt.Sprintf(`  hamyon add %s 50000 --category %s
  hamyon add %s "1 250 000" --date 2024-05-01 -m "note"`, t, model.FallbackCategoryID(t), t),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(strings.Join(args, " "))
			if err != nil {
				return err
			}

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data := store.Snapshot()
			cat, err := resolveCategory(data.Categories, t, category)
			if err != nil {
				return err
			}

			if date == "" {
				date = today()
			}

			tx, err := store.AddTransaction(ctx, model.TransactionInput{
				Type:        t,
				CategoryID:  cat.ID,
				Amount:      amount,
				Description: description,
				Date:        date,
			})
			if err != nil {
				return fmt.Errorf("failed to add %s: %w", t, err)
			}

			return writef(cmd.OutOrStdout(), "%s %s %s\n",
				cli.FormatSuccess("Added"),
				cli.StyleSigned(tx, a.cfg.Display.Currency),
				cli.SubtleStyle.Render(fmt.Sprintf("(%s, %s, id %s)", cli.CategoryLabel(cat, true), cli.FormatDate(tx.Date), tx.ID)))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name (default: Boshqa)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&description, "description", "m", "", "free-text note")

	return cmd
}
