package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/hamyon/internal/export"
)

func exportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and categories as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			store, cleanup, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), store.Snapshot(), f)
			}

			file, err := os.Create(filepath.Clean(output))
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer func() { _ = file.Close() }()

			if err := export.Write(file, store.Snapshot(), f); err != nil {
				return err
			}
			if err := file.Sync(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: stdout)")

	return cmd
}
