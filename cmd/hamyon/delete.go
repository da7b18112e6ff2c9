package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/cli"
)

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete transactions by id",
		Long:    `Delete one or more transactions. Unknown ids are ignored.`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := a.openLedger(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, id := range args {
				if !store.Snapshot().HasTransaction(id) {
					if err := writef(out, "%s\n", cli.FormatWarning("No transaction "+id)); err != nil {
						return err
					}
					continue
				}
				if err := store.DeleteTransaction(ctx, id); err != nil {
					return fmt.Errorf("failed to delete transaction %s: %w", id, err)
				}
				if err := writef(out, "%s\n", cli.FormatSuccess("Deleted "+id)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
