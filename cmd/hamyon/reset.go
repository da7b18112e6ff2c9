package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/cli"
)

func resetCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all transactions and custom categories",
		Long: `Reset removes the stored document. The next start shows the default
categories and no transactions. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			data := store.Snapshot()

			if !force {
				if err := writef(out, "This will delete %d transactions and %d categories.\n",
					len(data.Transactions), len(data.Categories)); err != nil {
					return err
				}
				ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Are you sure you want to continue?")
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if !ok {
					return writef(out, "Reset canceled.\n")
				}
			}

			if err := store.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}
			return writef(out, "%s\n", cli.FormatSuccess("All data removed"))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
