package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"idlewatch/internal/clock"
	"idlewatch/internal/config"
)

// Monitor orchestrates the presence probe, the hysteresis checker and the
// notifier in a single serial loop. Overlapping probes would corrupt the
// vote counters' meaning, so everything blocks on one goroutine.
type Monitor struct {
	presence PresenceProbe
	checker  BusyChecker
	notifier Notifier
	clock    clock.Clock
	cfg      config.MonitorConfig
	logger   *zap.Logger
	state    State
}

// New creates a monitor loop
func New(presence PresenceProbe, checker BusyChecker, notifier Notifier, clk clock.Clock, cfg config.MonitorConfig, logger *zap.Logger) *Monitor {
	return &Monitor{
		presence: presence,
		checker:  checker,
		notifier: notifier,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
		state:    StateRunning,
	}
}

// State returns the loop's current state
func (m *Monitor) State() State {
	return m.state
}

// Run executes the monitor loop until a termination condition is met. The
// duration cap and the passed-check cap are independent guards evaluated at
// the top of every iteration. Context cancellation at any suspension point
// terminates cleanly with ReasonShutdown.
func (m *Monitor) Run(ctx context.Context) (Result, error) {
	m.logger.Info("beginning monitor loop",
		zap.Int("running_duration_s", m.cfg.RunningDurationS),
		zap.Int("sleep_mode_length_s", m.cfg.SleepModeLengthS),
		zap.Int("max_passed_checks", m.cfg.MaxPassedChecks))

	run := RunState{}

	for {
		if run.ElapsedSeconds > m.cfg.RunningDurationS {
			return m.terminate(ReasonDurationCap, run, false), nil
		}
		if run.PassedChecks >= m.cfg.MaxPassedChecks {
			return m.terminate(ReasonCheckCap, run, false), nil
		}

		m.logger.Info("checking for user presence")
		present, err := m.presence.IsPresent(ctx)
		if err != nil {
			return m.failOrShutdown(err, run)
		}

		if present {
			run.PassedChecks = 0
			if err := m.sleepMode(ctx, &run); err != nil {
				return m.failOrShutdown(err, run)
			}
			continue
		}

		busy, sample, err := m.checker.IsBusy(ctx)
		if err != nil {
			return m.failOrShutdown(err, run)
		}

		if busy {
			m.state = StateNotifying
			err := m.notifier.Notify(ctx, sample)
			if err != nil {
				// The triggering condition may no longer hold by
				// the time a retry would land; log and terminate.
				m.logger.Error("notification failed", zap.Error(err))
				return m.terminate(ReasonError, run, false), err
			}
			return m.terminate(ReasonNotified, run, true), nil
		}

		run.PassedChecks++
		if err := m.sleepMode(ctx, &run); err != nil {
			return m.failOrShutdown(err, run)
		}
	}
}

// sleepMode accrues elapsed time and blocks for the inter-cycle sleep.
// Elapsed time increases only here.
func (m *Monitor) sleepMode(ctx context.Context, run *RunState) error {
	m.state = StateSleeping
	m.logger.Info("entering sleep mode",
		zap.Int("sleep_mode_length_s", m.cfg.SleepModeLengthS),
		zap.Int("elapsed_s", run.ElapsedSeconds),
		zap.Int("passed_checks", run.PassedChecks))

	run.ElapsedSeconds += m.cfg.SleepModeLengthS
	if err := m.clock.Sleep(ctx, time.Duration(m.cfg.SleepModeLengthS)*time.Second); err != nil {
		return err
	}

	m.state = StateRunning
	return nil
}

func (m *Monitor) terminate(reason Reason, run RunState, notified bool) Result {
	m.state = StateTerminated
	m.logger.Info("monitor loop terminated",
		zap.String("reason", string(reason)),
		zap.Int("elapsed_s", run.ElapsedSeconds),
		zap.Int("passed_checks", run.PassedChecks),
		zap.Bool("notified", notified))

	return Result{Reason: reason, Run: run, Notified: notified}
}

// failOrShutdown distinguishes an honored shutdown signal from a real
// failure. Shutdown is a normal termination path; anything else is
// fail-closed.
func (m *Monitor) failOrShutdown(err error, run RunState) (Result, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return m.terminate(ReasonShutdown, run, false), nil
	}

	m.logger.Error("monitor loop failed", zap.Error(err))
	return m.terminate(ReasonError, run, false), err
}
