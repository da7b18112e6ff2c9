package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/aggregate"
	"github.com/Veraticus/hamyon/internal/cli"
	"github.com/Veraticus/hamyon/internal/model"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage income and expense categories",
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(deleteCategoryCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories by type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			cats := store.Snapshot().Categories
			out := cmd.OutOrStdout()
			for i, t := range []model.TransactionType{model.TypeIncome, model.TypeExpense} {
				if i > 0 {
					if err := writef(out, "\n"); err != nil {
						return err
					}
				}
				if err := writef(out, "%s\n", cli.BoldStyle.Render(strings.ToUpper(t.String()))); err != nil {
					return err
				}
				if err := printCategories(out, aggregate.CategoriesByType(cats, t)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printCategories(w io.Writer, cats []model.Category) error {
	if len(cats) == 0 {
		return writef(w, "  %s\n", cli.SubtleStyle.Render("(none)"))
	}

	defaults, custom := aggregate.SplitDefault(cats)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range append(defaults, custom...) {
		tag := ""
		if !c.IsDefault {
			tag = cli.InfoStyle.Render("custom")
		}
		if _, err := fmt.Fprintf(tw, "  %s\t%s %s\t%s\n", cli.SubtleStyle.Render(c.ID), c.Icon, c.Name, tag); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func addCategoryCmd(a *app) *cobra.Command {
	var (
		icon string
		typ  string
	)

	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Create a category",
		Example: `  hamyon categories add Kitoblar --icon 📚 --type expense`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			cat, err := store.AddCategory(ctx, model.CategoryInput{
				Name: strings.Join(args, " "),
				Icon: icon,
				Type: t,
			})
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			return writef(cmd.OutOrStdout(), "%s %s\n",
				cli.FormatSuccess("Created "+cat.Type.String()+" category "+cli.CategoryLabel(cat, true)),
				cli.SubtleStyle.Render("(id "+cat.ID+")"))
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", "🏷️", "icon shown next to the name")
	cmd.Flags().StringVarP(&typ, "type", "t", "expense", "income or expense")

	return cmd
}

func deleteCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category",
		Long: `Delete a category. Transactions filed under it are kept and show up
as an unknown category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data := store.Snapshot()
			cat, ok := aggregate.FindCategory(data.Categories, args[0])
			if !ok {
				return writef(cmd.OutOrStdout(), "%s\n", cli.FormatWarning("No category "+args[0]))
			}

			orphaned := len(aggregate.FilterTransactions(data.Transactions, aggregate.Filter{CategoryID: cat.ID}))
			if err := store.DeleteCategory(ctx, cat.ID); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			out := cmd.OutOrStdout()
			if err := writef(out, "%s\n", cli.FormatSuccess("Deleted category "+cli.CategoryLabel(cat, true))); err != nil {
				return err
			}
			if orphaned > 0 {
				return writef(out, "%s\n", cli.FormatInfo(fmt.Sprintf("%d transactions keep their reference to %s", orphaned, cat.ID)))
			}
			return nil
		},
	}
}
