package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/freight-audit/internal/cli"
	"github.com/Veraticus/freight-audit/internal/common"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved audits",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved audits, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sessions, err := store.ListAuditSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			stats, err := store.GetStatistics(cmd.Context())
			if err != nil {
				return err
			}

			r := cli.NewRenderer(cmd.OutOrStdout())
			r.History(sessions)
			if stats.SessionCount > 0 {
				r.Statistics(stats)
			}
			return nil
		},
	}
	list.Flags().Int("limit", 20, "Maximum audits to list (0 for all)")

	show := &cobra.Command{
		Use:   "show <audit-id>",
		Short: "Show a saved audit and its findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, findings, err := store.GetAuditSession(cmd.Context(), args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("no saved audit with ID %s", args[0]), err)
			}
			if err != nil {
				return err
			}

			cli.NewRenderer(cmd.OutOrStdout()).Session(session, findings)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <audit-id>",
		Short: "Delete a saved audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteAuditSession(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no saved audit with ID %s", args[0]), err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted audit "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, show, remove)
	return cmd
}
