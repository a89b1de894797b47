package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/krkonrad/Calculation-data/internal/aggregate"
	"github.com/krkonrad/Calculation-data/internal/cli"
	"github.com/krkonrad/Calculation-data/internal/common"
	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/dataset"
	"github.com/krkonrad/Calculation-data/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the statistics of every location to Google Sheets",
		Long: `Export the statistics of every location and of everyone to a Google Sheet.

Authentication uses either a service account key (sheets.service_account_path or
GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH) or an OAuth2 refresh token (sheets.client_id,
sheets.client_secret, sheets.refresh_token or the matching GOOGLE_SHEETS_* variables).
Without sheets.spreadsheet_id a new spreadsheet is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sheetsCfg, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets is not configured", err)
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context(), "Export")

			writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
			if err != nil {
				return err
			}

			ds, err := loadDataset(ctx, cfg, showProgress, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := runExport(ctx, ds, writer, exportMeta(cfg)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported statistics to Google Sheets"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress spinner while normalizing")

	return cmd
}

func exportMeta(cfg *config.Config) sheets.ExportMeta {
	return sheets.ExportMeta{
		ReferenceDate: cfg.ReferenceDate,
		SourceName:    filepath.Base(cfg.DataFile),
		WholeLabel:    cfg.WholeLabel,
	}
}

// runExport aggregates every location and hands the summaries to w.
func runExport(ctx context.Context, ds *dataset.Dataset, w sheets.ReportWriter, meta sheets.ExportMeta) error {
	records, err := ds.Records(ctx)
	if err != nil {
		return err
	}

	summaries := aggregate.All(records)
	if len(summaries) == 0 {
		return common.NewUserError("the data file has no usable households", common.ErrNoData)
	}

	slog.Info("Exporting summaries", "summaries", len(summaries), "records", len(records))
	if err := w.Write(ctx, summaries, meta); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}
