package presence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"idlewatch/internal/config"
)

type fakeClock struct {
	sleeps []time.Duration
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	return nil
}

// scriptedReader returns markers (or errors) in sequence; exhausted scripts
// repeat the final entry
type scriptedReader struct {
	markers []Marker
	errs    []error
	calls   int
}

func (r *scriptedReader) Read() (Marker, error) {
	i := r.calls
	if i >= len(r.markers) {
		i = len(r.markers) - 1
	}
	r.calls++
	if r.errs != nil && r.errs[i] != nil {
		return Marker{}, r.errs[i]
	}
	return r.markers[i], nil
}

func testPresenceConfig() config.PresenceConfig {
	return config.PresenceConfig{WaitTimeS: 1, CheckCount: 5}
}

func cursorAt(x, y int32) Marker {
	return Marker{CursorX: x, CursorY: y}
}

func TestProbe_EarlyExitOnActivity(t *testing.T) {
	// Reference at (10,10); poll 1 unchanged, poll 2 moved. Polls 3-5
	// must not be consumed.
	reader := &scriptedReader{markers: []Marker{
		cursorAt(10, 10), // initial reference
		cursorAt(10, 10),
		cursorAt(42, 17),
	}}
	clk := &fakeClock{}
	probe := NewProbe(reader, clk, testPresenceConfig(), zap.NewNop())

	present, err := probe.IsPresent(context.Background())

	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 3, reader.calls, "initial read plus two polls")
	assert.Len(t, clk.sleeps, 2)
}

func TestProbe_AbsentAfterExhaustedPolls(t *testing.T) {
	reader := &scriptedReader{markers: []Marker{cursorAt(10, 10)}}
	clk := &fakeClock{}
	probe := NewProbe(reader, clk, testPresenceConfig(), zap.NewNop())

	present, err := probe.IsPresent(context.Background())

	require.NoError(t, err)
	assert.False(t, present)
	assert.Len(t, clk.sleeps, 5)
}

func TestProbe_ReferenceUpdatesOnDetection(t *testing.T) {
	reader := &scriptedReader{markers: []Marker{
		cursorAt(10, 10),
		cursorAt(42, 17), // detected; becomes the new reference
	}}
	probe := NewProbe(reader, &fakeClock{}, testPresenceConfig(), zap.NewNop())

	present, err := probe.IsPresent(context.Background())
	require.NoError(t, err)
	require.True(t, present)

	// The cursor has not moved since the detection, so the next check
	// must come up absent.
	present, err = probe.IsPresent(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestProbe_ReadErrorCountsAsNoActivity(t *testing.T) {
	readErr := errors.New("marker read failed")
	reader := &scriptedReader{
		markers: []Marker{cursorAt(10, 10), {}, {}, cursorAt(42, 17)},
		errs:    []error{nil, readErr, readErr, nil},
	}
	probe := NewProbe(reader, &fakeClock{}, testPresenceConfig(), zap.NewNop())

	present, err := probe.IsPresent(context.Background())

	require.NoError(t, err)
	assert.True(t, present, "detection on the first successful poll after failures")
	assert.Equal(t, 4, reader.calls)
}

func TestProbe_MissingBaselineAdoptedWithoutDetection(t *testing.T) {
	// The initial reference read fails; the first successful poll must
	// establish the baseline rather than report presence.
	reader := &scriptedReader{
		markers: []Marker{{}, cursorAt(42, 17)},
		errs:    []error{errors.New("not ready"), nil},
	}
	probe := NewProbe(reader, &fakeClock{}, testPresenceConfig(), zap.NewNop())

	present, err := probe.IsPresent(context.Background())

	require.NoError(t, err)
	assert.False(t, present)
}

func TestProbe_CancelledContextPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &scriptedReader{markers: []Marker{cursorAt(10, 10)}}
	probe := NewProbe(reader, &fakeClock{}, testPresenceConfig(), zap.NewNop())

	_, err := probe.IsPresent(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarker_ActivitySince(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		prev Marker
		next Marker
		want bool
	}{
		{
			name: "identical markers",
			prev: cursorAt(10, 10),
			next: cursorAt(10, 10),
			want: false,
		},
		{
			name: "cursor moved",
			prev: cursorAt(10, 10),
			next: cursorAt(11, 10),
			want: true,
		},
		{
			name: "interrupt count advanced",
			prev: Marker{InputEvents: 100},
			next: Marker{InputEvents: 101},
			want: true,
		},
		{
			name: "last input within jitter",
			prev: Marker{LastInput: base},
			next: Marker{LastInput: base.Add(500 * time.Millisecond)},
			want: false,
		},
		{
			name: "last input beyond jitter",
			prev: Marker{LastInput: base},
			next: Marker{LastInput: base.Add(5 * time.Second)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.ActivitySince(tt.prev))
		})
	}
}
