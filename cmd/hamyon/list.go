package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
)

func listCmd(a *app) *cobra.Command {
	var (
		typ      string
		category string
		from     string
		to       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Long: `List transactions matching every given filter. Both date bounds are
inclusive; --to covers the whole of that day.`,
		Example: `  hamyon list --type expense --from 2024-05-01 --to 2024-05-31
  hamyon list --category Ovqat`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			t, err := parseType(typ)
			if err != nil {
				return err
			}

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data := store.Snapshot()
			filter := aggregate.Filter{Type: t, StartDate: from, EndDate: to}
			if category != "" {
				if filter.CategoryID, err = categoryFilterID(data.Categories, t, category); err != nil {
					return err
				}
			}
			if err := filter.Validate(); err != nil {
				return err
			}

			txs := aggregate.FilterTransactions(data.Transactions, filter)
			out := cmd.OutOrStdout()
			if err := printTransactions(out, txs, data.Categories, a.cfg.Display.Currency); err != nil {
				return err
			}
			if len(txs) == 0 {
				return nil
			}

			totals := aggregate.Totals(txs)
			return writef(out, "\n%d transactions  income %s  expense %s  net %s\n",
				len(txs),
				cli.IncomeStyle.Render(cli.FormatAmount(totals.Income, a.cfg.Display.Currency)),
				cli.ExpenseStyle.Render(cli.FormatAmount(totals.Expense, a.cfg.Display.Currency)),
				cli.StyleBalance(totals.Balance, a.cfg.Display.Currency))
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "income or expense")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")

	return cmd
}

// categoryFilterID maps a name to its id. Unknown references are used as
// ids verbatim so transactions of deleted categories stay reachable. A name
// shared by categories of both types must be narrowed with --type or an id.
func categoryFilterID(cats []model.Category, t model.TransactionType, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, c := range cats {
		if c.ID == ref && (t == "" || c.Type == t) {
			return c.ID, nil
		}
	}

	var ids []string
	for _, c := range cats {
		if (t == "" || c.Type == t) && strings.EqualFold(c.Name, ref) {
			ids = append(ids, c.ID)
		}
	}
	switch len(ids) {
	case 0:
		return ref, nil
	case 1:
		return ids[0], nil
	default:
		return "", common.NewUserError(
			fmt.Sprintf("category name %q matches %s; pass --type or a category id", ref, strings.Join(ids, ", ")),
			common.ErrInvalidInput)
	}
}

func recentCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if n == 0 {
				n = a.cfg.Display.Recent
			}
			data := store.Snapshot()
			return printTransactions(cmd.OutOrStdout(), aggregate.Recent(data.Transactions, n), data.Categories, a.cfg.Display.Currency)
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 0, "how many to show (default: display.recent)")
	return cmd
}
