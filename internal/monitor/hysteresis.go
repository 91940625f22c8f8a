package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"idlewatch/internal/clock"
	"idlewatch/internal/config"
	"idlewatch/internal/resource"
)

// Checker implements the resource-utilization hysteresis: a biased counter
// that requires a net run of same-direction votes before committing to a
// verdict, so single noisy samples cannot trigger a notification.
type Checker struct {
	sampler resource.Sampler
	clock   clock.Clock
	cfg     config.ResourceConfig
	logger  *zap.Logger
}

// NewChecker creates a hysteresis checker
func NewChecker(sampler resource.Sampler, clk clock.Clock, cfg config.ResourceConfig, logger *zap.Logger) *Checker {
	return &Checker{
		sampler: sampler,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// IsBusy samples utilization until the vote counter commits to a verdict or
// the failsafe bound is hit. Each sample at or above a threshold increments
// the counter; each sample below all thresholds decrements it. A failed
// sample counts as an idle vote so transient probe errors can never stall
// the bounded loop. The returned sample is the most recent successful one.
func (c *Checker) IsBusy(ctx context.Context) (bool, resource.Sample, error) {
	interval := time.Duration(c.cfg.CheckIntervalS) * time.Second

	resourceCounter := 0
	totalChecks := 0
	var last resource.Sample

	for resourceCounter < c.cfg.Checks && resourceCounter > -c.cfg.Checks && totalChecks < c.cfg.MaxChecks {
		if err := c.clock.Sleep(ctx, interval); err != nil {
			return false, last, err
		}

		sample, err := c.sampler.Sample(ctx)
		totalChecks++
		if err != nil {
			c.logger.Warn("resource sample failed, counting as idle vote",
				zap.Int("total_checks", totalChecks),
				zap.Error(err))
			resourceCounter--
			continue
		}

		last = sample
		if c.busyVote(sample) {
			resourceCounter++
			c.logger.Info("resources are being heavily utilized",
				zap.Int("resource_counter", resourceCounter),
				zap.Float64("cpu_threshold_pct", c.cfg.CPUThresholdPct),
				zap.Float64("memory_threshold_pct", c.cfg.MemoryThresholdPct))
		} else {
			resourceCounter--
			c.logger.Info("resources not being heavily utilized",
				zap.Int("resource_counter", resourceCounter),
				zap.Float64("cpu_threshold_pct", c.cfg.CPUThresholdPct),
				zap.Float64("memory_threshold_pct", c.cfg.MemoryThresholdPct))
		}
	}

	switch {
	case resourceCounter >= c.cfg.Checks:
		c.logger.Warn("machine failed resource checks",
			zap.Int("total_checks", totalChecks))
		return true, last, nil

	case resourceCounter <= -c.cfg.Checks:
		c.logger.Info("machine passed resource checks",
			zap.Int("total_checks", totalChecks))
		return false, last, nil

	case totalChecks >= c.cfg.MaxChecks:
		// Votes kept rebounding; an inconclusive verdict is treated as
		// idle rather than risking a false notification.
		c.logger.Warn("maximum number of resource checks reached",
			zap.Int("total_checks", totalChecks))
		return false, last, nil

	default:
		// Unreachable under the loop guard; fail safe toward idle.
		c.logger.Error("resource check exited outside its defined policy",
			zap.Int("resource_counter", resourceCounter),
			zap.Int("total_checks", totalChecks))
		return false, last, nil
	}
}

// busyVote reports whether a sample is at or above any configured threshold.
// GPU participates only when the sample carries GPU data.
func (c *Checker) busyVote(s resource.Sample) bool {
	if s.CPUPercent >= c.cfg.CPUThresholdPct {
		return true
	}
	if s.MemoryPercent >= c.cfg.MemoryThresholdPct {
		return true
	}
	return s.GPUPercent >= 0 && s.GPUPercent >= c.cfg.GPUThresholdPct
}
