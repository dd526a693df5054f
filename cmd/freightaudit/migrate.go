package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/freight-audit/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the audit history schema to the latest version.
Other commands migrate automatically; this is useful after an upgrade.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Audit history is up to date at "+store.Path()))
			return nil
		},
	}
}
