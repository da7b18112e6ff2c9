package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/model"
)

const barWidth = 20

func analyticsCmd(a *app) *cobra.Command {
	var (
		typ    string
		months int
	)

	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Show spending by category and month-by-month totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseType(typ)
			if err != nil {
				return err
			}
			if t == "" {
				t = model.TypeExpense
			}
			if months == 0 {
				months = a.cfg.Display.Months
			}

			store, cleanup, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			data := store.Snapshot()
			out := cmd.OutOrStdout()
			cur := a.cfg.Display.Currency

			if err := writef(out, "%s\n", cli.FormatTitle(cli.ChartIcon, "By category ("+t.String()+")")); err != nil {
				return err
			}
			rows := aggregate.CategoryBreakdown(data.Transactions, data.Categories, t)
			if err := printBreakdown(out, rows, cur); err != nil {
				return err
			}

			if err := writef(out, "\n%s\n", cli.FormatTitle(cli.CalendarIcon, fmt.Sprintf("Last %d months", months))); err != nil {
				return err
			}
			return printSeries(out, aggregate.MonthlySeries(data.Transactions, months), cur)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "expense", "breakdown type: income or expense")
	cmd.Flags().IntVar(&months, "months", 0, "months of history (default: display.months)")

	return cmd
}

func printBreakdown(w io.Writer, rows []aggregate.CategoryAmount, currency string) error {
	if len(rows) == 0 {
		return writef(w, "%s\n", cli.SubtleStyle.Render("Nothing to show."))
	}

	// Percentages is nil when every amount is zero.
	pcts := aggregate.Percentages(rows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range rows {
		bar, pct := "", ""
		if pcts != nil {
			bar = cli.BarStyle.Render(cli.Bar(pcts[i], barWidth))
			pct = cli.FormatPercent(pcts[i])
		}
		if _, err := fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n",
			r.Icon, r.Category, cli.FormatAmount(r.Amount, currency), bar, pct); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printSeries(w io.Writer, series []aggregate.MonthSummary, currency string) error {
	if len(series) == 0 {
		return writef(w, "%s\n", cli.SubtleStyle.Render("Nothing to show."))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("MONTH"),
		cli.BoldStyle.Render("INCOME"),
		cli.BoldStyle.Render("EXPENSE"),
		cli.BoldStyle.Render("BALANCE")); err != nil {
		return err
	}
	for _, m := range series {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.Month,
			cli.IncomeStyle.Render(cli.FormatAmount(m.Income, currency)),
			cli.ExpenseStyle.Render(cli.FormatAmount(m.Expense, currency)),
			cli.StyleBalance(m.Balance(), currency)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
