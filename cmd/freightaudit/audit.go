package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/freight-audit/internal/audit"
	"github.com/Veraticus/freight-audit/internal/cli"
	"github.com/Veraticus/freight-audit/internal/common"
	"github.com/Veraticus/freight-audit/internal/config"
	"github.com/Veraticus/freight-audit/internal/filingwindow"
	"github.com/Veraticus/freight-audit/internal/ingest"
	"github.com/Veraticus/freight-audit/internal/model"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <export>...",
		Short: "Audit one or more carrier billing exports",
		Long: `Load carrier billing exports (CSV or tab-delimited), merge them and run
every billing check. Findings are printed with refund estimates, claim
priorities and filing-window status.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAudit,
	}

	cmd.Flags().Bool("save", false, "Save the audit to history")
	cmd.Flags().String("export", "", "Write actionable findings to a CSV file")
	cmd.Flags().String("today", "", "Evaluate filing windows as of this date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 25, "Maximum findings to print (0 for all)")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	save, _ := cmd.Flags().GetBool("save")
	exportPath, _ := cmd.Flags().GetString("export")
	todayFlag, _ := cmd.Flags().GetString("today")
	limit, _ := cmd.Flags().GetInt("limit")

	today, err := parseToday(todayFlag)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return common.NewUserError("invalid audit configuration", err)
	}
	engine, err := audit.New(cfg)
	if err != nil {
		return common.NewUserError("invalid audit configuration", err)
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), save)

	loader := ingest.NewLoader()
	bar := cli.NewFileProgress(cmd.ErrOrStderr(), len(args))
	tables := make([]*model.Table, 0, len(args))
	for _, path := range args {
		table, err := loader.LoadFile(ctx, path)
		if err != nil {
			if handler.WasInterrupted() {
				return nil
			}
			return common.NewUserError(fmt.Sprintf("could not load %s", filepath.Base(path)), err)
		}
		tables = append(tables, table)
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	merged := ingest.Merge(tables...)
	if merged.Len() == 0 {
		return common.NewUserError("the exports contain no rows", common.ErrNoRecords)
	}

	result, err := engine.Run(ctx, merged)
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("audit failed: %w", err)
	}

	renderer := cli.NewRenderer(cmd.OutOrStdout())
	renderer.Summary(result)
	renderer.Findings(result.Actionable, limit)
	renderer.Filing(filingwindow.Classify(result.Actionable, today))
	renderer.Misc(result.Misc)

	if exportPath != "" {
		if err := exportFindings(exportPath, result.Actionable); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported findings to "+exportPath))
	}

	if save {
		store, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		names := make([]string, len(args))
		for i, a := range args {
			names[i] = filepath.Base(a)
		}
		if err := store.SaveAuditSession(ctx, result.Session(strings.Join(names, ", ")), result.Actionable); err != nil {
			return fmt.Errorf("failed to save audit: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved audit "+result.ID))
	}

	return nil
}

func exportFindings(path string, findings []model.Finding) error {
	f, err := os.Create(config.ExpandPath(path))
	if err != nil {
		return common.NewUserError("could not create export file", err)
	}
	if err := cli.WriteFindingsCSV(f, findings); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
