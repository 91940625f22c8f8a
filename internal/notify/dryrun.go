package notify

import (
	"context"

	"go.uber.org/zap"

	"idlewatch/internal/config"
	"idlewatch/internal/resource"
)

// DryRun logs the would-be notification instead of publishing it. Used in
// debug mode so the full decision path can run without a network call; the
// caller proceeds exactly as on a successful publish.
type DryRun struct {
	thresholds config.ResourceConfig
	logger     *zap.Logger
}

// NewDryRun creates a dry-run notifier
func NewDryRun(thresholds config.ResourceConfig, logger *zap.Logger) *DryRun {
	return &DryRun{
		thresholds: thresholds,
		logger:     logger,
	}
}

// Notify logs the message and performs no network call
func (d *DryRun) Notify(_ context.Context, sample resource.Sample) error {
	d.logger.Info("debug mode, skipping sns publish",
		zap.String("message", formatMessage(sample, d.thresholds)))
	return nil
}
