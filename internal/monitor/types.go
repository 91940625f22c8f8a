// Package monitor contains the decision core: the resource-utilization
// hysteresis check and the monitor loop state machine that combines it with
// presence detection and the one-shot notification.
package monitor

import (
	"context"

	"idlewatch/internal/resource"
)

// State of the monitor loop
type State string

// Monitor loop states
const (
	StateRunning    State = "running"
	StateSleeping   State = "sleeping"
	StateNotifying  State = "notifying"
	StateTerminated State = "terminated"
)

// Reason explains why the monitor loop terminated
type Reason string

// Termination reasons
const (
	// ReasonDurationCap: accumulated sleep time exceeded the running duration
	ReasonDurationCap Reason = "duration cap reached"

	// ReasonCheckCap: consecutive passed checks reached their cap
	ReasonCheckCap Reason = "check cap reached"

	// ReasonNotified: a busy-while-unattended verdict triggered the notification
	ReasonNotified Reason = "notification sent"

	// ReasonShutdown: an external shutdown signal cancelled the run
	ReasonShutdown Reason = "shutdown requested"

	// ReasonError: an unrecoverable sub-procedure or notification error
	ReasonError Reason = "error"
)

// RunState is the loop's mutable bookkeeping, owned exclusively by the
// monitor and discarded at process exit.
type RunState struct {
	// ElapsedSeconds accumulates inter-cycle sleep time; it only increases
	ElapsedSeconds int

	// PassedChecks counts consecutive absent-but-idle cycles
	PassedChecks int
}

// Result describes a completed run
type Result struct {
	Reason   Reason
	Run      RunState
	Notified bool
}

// PresenceProbe reports whether the user interacted with input devices
// since the last check
type PresenceProbe interface {
	IsPresent(ctx context.Context) (bool, error)
}

// BusyChecker decides whether the machine is busy, returning the last
// successful sample for the notification message
type BusyChecker interface {
	IsBusy(ctx context.Context) (bool, resource.Sample, error)
}

// Notifier publishes the one-shot busy-while-unattended message
type Notifier interface {
	Notify(ctx context.Context, sample resource.Sample) error
}
