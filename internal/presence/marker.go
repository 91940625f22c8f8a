// Package presence detects recent human input activity by comparing opaque
// activity markers (cursor position, last-input instant, input interrupt
// counters) against a stored reference.
package presence

import "time"

// Marker is a snapshot of user input activity. Which fields are populated
// depends on the platform reader; unpopulated fields stay at their zero
// value on both sides of a comparison and never signal activity.
type Marker struct {
	// LastInput is the instant of the most recent input event
	LastInput time.Time

	// CursorX, CursorY is the pointer position
	CursorX, CursorY int32

	// InputEvents is a monotonic count of input device interrupts
	InputEvents uint64
}

// lastInputJitter absorbs clock drift between two last-input reads that do
// not reflect real new input.
const lastInputJitter = time.Second

// IsZero reports whether the marker carries no activity data at all
func (m Marker) IsZero() bool {
	return m.LastInput.IsZero() && m.CursorX == 0 && m.CursorY == 0 && m.InputEvents == 0
}

// ActivitySince reports whether this marker indicates new input activity
// relative to prev
func (m Marker) ActivitySince(prev Marker) bool {
	if m.InputEvents != prev.InputEvents {
		return true
	}
	if m.CursorX != prev.CursorX || m.CursorY != prev.CursorY {
		return true
	}
	return m.LastInput.After(prev.LastInput.Add(lastInputJitter))
}

// Reader reads a fresh activity marker from the operating system
type Reader interface {
	Read() (Marker, error)
}

// NewReader returns the platform-specific marker reader
func NewReader() Reader {
	return newReader()
}
