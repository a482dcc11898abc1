package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/outlet-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/outlet-dashboard/internal/client/workbook"
	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/services"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
	"github.com/GregMSThompson/outlet-dashboard/internal/store"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

type sheetReader interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

var (
	spreadsheetID string
	readRange     string
	workbookPath  string
	timeout       time.Duration

	period     string
	xlsxOutput string
	limit      int
)

// snapshot prints what the API would serve, straight from the spreadsheets
// or from a local .xlsx export. It only needs Sheets access, so it skips
// Firestore, Firebase and Vertex.
func main() {
	rootCmd := &cobra.Command{
		Use:          "snapshot",
		Short:        "Print outlet dashboard data as JSON",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&spreadsheetID, "spreadsheet", "", "spreadsheet id (defaults to the configured one)")
	rootCmd.PersistentFlags().StringVar(&readRange, "range", "", "A1 range or tab name (defaults to the configured one)")
	rootCmd.PersistentFlags().StringVar(&workbookPath, "file", "", "read a local .xlsx export instead of Google Sheets")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Extract one period of the outlet dashboard",
		Args:  cobra.NoArgs,
		RunE:  runDashboard,
	}
	dashboardCmd.Flags().StringVar(&period, "period", sheetgrid.Period1Day, `dashboard period ("1 Day" or "7 Day")`)
	dashboardCmd.Flags().StringVarP(&xlsxOutput, "xlsx", "o", "", "write an .xlsx workbook to this path instead of JSON")

	checklistsCmd := &cobra.Command{
		Use:   "checklists",
		Short: "List checklist submissions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runChecklists,
	}
	checklistsCmd.Flags().IntVar(&limit, "limit", 0, "maximum submissions (0 for all)")

	stockOutCmd := &cobra.Command{
		Use:   "stock-out",
		Short: "List stock-out items grouped by outlet",
		Args:  cobra.NoArgs,
		RunE:  runStockOut,
	}

	rootCmd.AddCommand(dashboardCmd, checklistsCmd, stockOutCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg := config.New()
	ctx, cancel, log := commandContext(cmd, cfg)
	defer cancel()

	reader, closeFn, err := newSheetReader(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	svc := services.NewDashboardService(reader, sourceFor(cfg.Dashboard), nil)
	if xlsxOutput != "" {
		b, err := svc.ExportDashboard(ctx, period)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxOutput, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", xlsxOutput, err)
		}
		log.Info("dashboard workbook written", "path", xlsxOutput, "period", period)
		return nil
	}

	resp, err := svc.GetDashboard(ctx, period)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runChecklists(cmd *cobra.Command, _ []string) error {
	cfg := config.New()
	ctx, cancel, log := commandContext(cmd, cfg)
	defer cancel()

	reader, closeFn, err := newSheetReader(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := services.NewChecklistService(reader, sourceFor(cfg.Checklist)).ListSubmissions(ctx, limit)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runStockOut(cmd *cobra.Command, _ []string) error {
	cfg := config.New()
	ctx, cancel, log := commandContext(cmd, cfg)
	defer cancel()

	reader, closeFn, err := newSheetReader(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := services.NewStockOutService(reader, sourceFor(cfg.StockOut), cfg.StockOutOutletColumn).ListStockOut(ctx)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func commandContext(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc, *slog.Logger) {
	log := logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	ctx, cancel := context.WithTimeout(logger.ToContext(cmd.Context(), log), timeout)
	return ctx, cancel, log
}

// sourceFor applies the --spreadsheet and --range overrides.
func sourceFor(source config.SheetSource) config.SheetSource {
	if spreadsheetID != "" {
		source.SpreadsheetID = spreadsheetID
	}
	if readRange != "" {
		source.Range = readRange
	}
	return source
}

func newSheetReader(ctx context.Context, log *slog.Logger, cfg *config.Config) (sheetReader, func(), error) {
	if workbookPath != "" {
		wb, err := workbook.Open(workbookPath)
		if err != nil {
			return nil, func() {}, err
		}
		return wb, func() { _ = wb.Close() }, nil
	}

	if cfg.SheetsCredentialsSecret == "" {
		adapter, err := bootstrap.InitSheets(ctx, log, nil, nil, "")
		return adapter, func() {}, err
	}

	sm, err := bootstrap.InitSecretManager(ctx)
	if err != nil {
		return nil, func() {}, err
	}
	closeFn := func() { _ = sm.Close() }

	adapter, err := bootstrap.InitSheets(ctx, log, nil, store.NewSecretsStore(sm, cfg.ProjectID), cfg.SheetsCredentialsSecret)
	return adapter, closeFn, err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
