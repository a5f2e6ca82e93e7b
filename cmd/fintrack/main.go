// The fintrack binary is the maintenance front door for the tracker's data
// layer: it brings the schema up to date (including the legacy ownership
// repair), can run an on-demand alert pass, and can export a user's
// expenses to CSV. The interactive desktop front end lives elsewhere and
// talks to the same services.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"fintrack/internal/alerts"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

func main() {
	var (
		alertPass  = flag.Bool("alert-pass", false, "run one alert evaluation for all users and exit")
		exportUser = flag.Int64("export-user", 0, "export this user's expenses to the configured CSV path and exit")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger("fintrack")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	ctx := context.Background()

	switch {
	case *exportUser > 0:
		expenses := services.NewExpenseService(store)
		if err := expenses.ExportToFile(ctx, cfg.ExportPath, *exportUser); err != nil {
			logger.Error("Export failed", "error", err, "user_id", *exportUser)
			os.Exit(1)
		}
		logger.Info("Export written", "path", cfg.ExportPath, "user_id", *exportUser)

	case *alertPass:
		evaluator := services.NewAlertEvaluator(store, alerts.LogNotifier{})
		if err := evaluator.EvaluateAll(ctx, core.Today(time.Now())); err != nil {
			logger.Error("Alert pass failed", "error", err)
			os.Exit(1)
		}

	default:
		// Plain invocation just migrates and repairs, which Open already
		// did. Useful as a pre-flight for the desktop front end.
		logger.Info("Database ready", "path", cfg.SQLiteDBPath)
	}
}
