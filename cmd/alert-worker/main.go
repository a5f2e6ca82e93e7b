// The alert-worker evaluates every user's recurring payments and monthly
// budget on a fixed cadence (daily by default): payments due tomorrow or
// today raise notifications, overdue ones roll forward, blown budgets are
// flagged. Notifications go to the log and, when AMQP is configured, to a
// durable queue a UI process can consume.
package main

import (
	"time"

	"fintrack/internal/alerts"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("alert-worker")
	logger.Info("Starting alert-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	notifier := alerts.MultiNotifier{alerts.LogNotifier{}}
	if cfg.AMQPURL != "" {
		amqpNotifier, err := alerts.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP notifier, continuing with log only", "error", err)
		} else {
			defer amqpNotifier.Close()
			notifier = append(notifier, amqpNotifier)
			logger.Info("AMQP notifier initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	evaluator := services.NewAlertEvaluator(store, notifier)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	logger.Info("Alert evaluation configured",
		"interval", cfg.AlertInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	// Run an initial pass on startup, then on every tick.
	if err := evaluator.EvaluateAll(ctx, core.Today(time.Now())); err != nil {
		logger.Error("Initial alert pass failed", "error", err)
	}

	ticker := time.NewTicker(cfg.AlertInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if err := evaluator.EvaluateAll(ctx, core.Today(now)); err != nil {
					logger.Error("Alert pass failed", "error", err)
				}
			}
		}
	}()

	<-ctx.Done()
	<-done
}
