package ui

import (
	"fmt"
	"time"
)

// FormatMillis renders a test duration (milliseconds) as a short human
// string: 340ms, 2.5s, 1m 12s.
func FormatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", ms)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
