package presence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"idlewatch/internal/clock"
	"idlewatch/internal/config"
)

// Probe polls for user input activity against a stored reference marker.
// A probe is not safe for concurrent use; the monitor loop is serial by
// design.
type Probe struct {
	reader Reader
	clock  clock.Clock
	cfg    config.PresenceConfig
	logger *zap.Logger
	ref    Marker
}

// NewProbe creates a presence probe and captures the initial reference
// marker. A failed initial read is logged and left for the first poll to
// establish.
func NewProbe(reader Reader, clk clock.Clock, cfg config.PresenceConfig, logger *zap.Logger) *Probe {
	p := &Probe{
		reader: reader,
		clock:  clk,
		cfg:    cfg,
		logger: logger,
	}

	m, err := reader.Read()
	if err != nil {
		logger.Warn("initial activity marker unavailable", zap.Error(err))
		return p
	}
	p.ref = m

	return p
}

// IsPresent performs up to CheckCount polls spaced WaitTimeS apart and
// reports whether the activity marker changed. The first detected change
// updates the reference and returns immediately without exhausting the
// remaining polls. A transient read failure counts as a no-activity poll.
func (p *Probe) IsPresent(ctx context.Context) (bool, error) {
	wait := time.Duration(p.cfg.WaitTimeS) * time.Second

	for i := 0; i < p.cfg.CheckCount; i++ {
		if err := p.clock.Sleep(ctx, wait); err != nil {
			return false, err
		}

		m, err := p.reader.Read()
		if err != nil {
			p.logger.Warn("activity marker read failed, counting poll as no activity",
				zap.Int("poll", i+1),
				zap.Error(err))
			continue
		}

		if p.ref.IsZero() {
			// No baseline yet; adopt this marker and keep polling.
			p.ref = m
			continue
		}

		if m.ActivitySince(p.ref) {
			p.ref = m
			p.logger.Info("user activity detected", zap.Int("poll", i+1))
			return true, nil
		}
	}

	p.logger.Info("user does not seem to be present",
		zap.Int("polls", p.cfg.CheckCount))
	return false, nil
}
