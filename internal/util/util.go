package util

import (
	"fmt"
	"time"
)

// FormatBytes renders a snapshot size for log lines, e.g. "512 B" or "1.5 KB".
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	const prefixes = "KMGTPE"
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < len(prefixes)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), prefixes[exp])
}

// FormatDuration renders elapsed sync time. Below one second it keeps
// millisecond precision, above one minute it drops to "1m5s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		d = d.Round(time.Second)

		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
