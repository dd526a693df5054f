package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/freight-audit/internal/cli"
	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/filingwindow"
)

func filingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filing <audit-id>",
		Short: "Re-check claim filing windows for a saved audit",
		Long: `Evaluate the findings of a saved audit against the carrier claim
deadlines as of today (or --today), showing which claims can still be filed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todayFlag, _ := cmd.Flags().GetString("today")
			today, err := parseToday(todayFlag)
			if err != nil {
				return err
			}

			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			_, findings, err := store.GetAuditSession(cmd.Context(), args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("no saved audit with ID %s", args[0]), err)
			}
			if err != nil {
				return err
			}

			res := filingwindow.Classify(findings, today)
			r := cli.NewRenderer(cmd.OutOrStdout())
			r.Filing(res)
			r.Findings(res.WithinWindow, 0)
			return nil
		},
	}
	cmd.Flags().String("today", "", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}
