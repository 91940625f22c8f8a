//go:build windows

package presence

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procGetCursorPos      = user32.NewProc("GetCursorPos")
	procGetLastInputInfo  = user32.NewProc("GetLastInputInfo")
	procGetTickCount      = kernel32.NewProc("GetTickCount")
)

type point struct {
	X int32
	Y int32
}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type sysReader struct{}

func newReader() Reader {
	return sysReader{}
}

// Read captures the cursor position and, when available, the last-input
// instant derived from GetLastInputInfo tick counts.
func (sysReader) Read() (Marker, error) {
	var pt point
	ret, _, callErr := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return Marker{}, fmt.Errorf("GetCursorPos: %w", callErr)
	}

	marker := Marker{CursorX: pt.X, CursorY: pt.Y}

	lii := lastInputInfo{}
	lii.cbSize = uint32(unsafe.Sizeof(lii))
	if ret, _, _ := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&lii))); ret != 0 {
		ticks, _, _ := procGetTickCount.Call()
		// Tick counts wrap at 32 bits; the subtraction stays correct
		// across a wrap as long as idle time is under ~49 days.
		idle := time.Duration(uint32(ticks)-lii.dwTime) * time.Millisecond
		marker.LastInput = time.Now().Add(-idle)
	}

	return marker, nil
}
