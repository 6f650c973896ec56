package main

import (
	"context"
	"fmt"

	"github.com/klimeurt/portfolio-collector/internal/collector"
	"github.com/klimeurt/portfolio-collector/internal/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// startScheduler registers the collection job and starts cron. When
// RunOnStartup is set, one run happens before it returns.
func startScheduler(cfg *config.Config, c *collector.Collector, logger *zap.Logger) (*cron.Cron, error) {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.CronSchedule, func() {
		if err := runCollection(c, logger); err != nil {
			logger.Error("Collection failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cron job: %w", err)
	}

	scheduler.Start()
	logger.Info("Cron scheduler started", zap.String("schedule", cfg.CronSchedule))

	// Run immediately on startup if configured
	if cfg.RunOnStartup {
		logger.Info("Running initial collection on startup...")
		if err := runCollection(c, logger); err != nil {
			logger.Error("Initial collection failed", zap.Error(err))
		}
	}

	return scheduler, nil
}

func runCollection(c *collector.Collector, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	snapshot, err := c.Collect(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Snapshot published", zap.String("run_id", snapshot.RunID))
	return nil
}
