//go:build darwin

package presence

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

type sysReader struct{}

func newReader() Reader {
	return sysReader{}
}

var hidIdleTimePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// Read parses HIDIdleTime (nanoseconds since the last input event) from the
// IOHIDSystem registry entry.
func (sysReader) Read() (Marker, error) {
	out, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return Marker{}, fmt.Errorf("ioreg: %w", err)
	}

	match := hidIdleTimePattern.FindSubmatch(out)
	if match == nil {
		return Marker{}, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}

	idleNs, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return Marker{}, fmt.Errorf("parse HIDIdleTime: %w", err)
	}

	return Marker{
		LastInput: time.Now().Add(-time.Duration(idleNs)),
	}, nil
}
