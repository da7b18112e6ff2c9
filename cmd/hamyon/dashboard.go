package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/cli"
)

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"overview"},
		Short:   "Show balance, today's and this month's spending",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			data := store.Snapshot()
			view := aggregate.Dashboard(data, time.Now(), a.cfg.Display.Recent)
			cur := a.cfg.Display.Currency

			var b strings.Builder
			fmt.Fprintf(&b, "Balance   %s\n", cli.StyleBalance(view.Balance, cur))
			fmt.Fprintf(&b, "Income    %s\n", cli.IncomeStyle.Render(cli.FormatAmount(view.Income, cur)))
			fmt.Fprintf(&b, "Expense   %s\n", cli.ExpenseStyle.Render(cli.FormatAmount(view.Expense, cur)))
			fmt.Fprintf(&b, "Today     %s\n", cli.FormatAmount(view.TodayExpense, cur))
			fmt.Fprintf(&b, "%s  %s", view.Month, cli.FormatAmount(view.MonthExpense, cur))

			out := cmd.OutOrStdout()
			if err := writef(out, "%s\n\n", cli.RenderBox(cli.WalletIcon+" hamyon", b.String())); err != nil {
				return err
			}
			if err := writef(out, "%s\n", cli.FormatTitle(cli.CalendarIcon, "Recent")); err != nil {
				return err
			}
			return printTransactions(out, view.Recent, data.Categories, cur)
		},
	}
}
