// Package dashboard computes per-metric status and trend summaries from a
// window of stored readings. It is read-only and side-effect-free.
package dashboard

import (
	"fmt"
	"time"
)

// Window is one of the supported relative time windows.
type Window string

const (
	WindowDay   Window = "24h"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"
)

// ParseWindow validates a window preset string. Only the fixed presets are
// supported; arbitrary durations are rejected.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDay, WindowWeek, WindowMonth:
		return Window(s), nil
	default:
		return "", fmt.Errorf("unsupported window %q (use 24h, 7d or 30d)", s)
	}
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	switch w {
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
