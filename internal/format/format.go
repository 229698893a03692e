// Package format renders seconds, durations and byte sizes for terminal output.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Seconds formats a position or length in seconds with two decimals ("12.30").
func Seconds(s float64) string {
	return fmt.Sprintf("%.2f", s)
}

// Clock formats seconds as HH:MM:SS, or MM:SS below one hour.
// Fractions are truncated.
func Clock(s float64) string {
	if math.IsNaN(s) || s < 0 {
		s = 0
	}
	total := int64(s)
	h := total / 3600
	m := (total / 60) % 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// Elapsed formats a wall-clock duration for a summary line.
// Examples: "850ms", "12s", "3m5s", "1h2m".
func Elapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", d/time.Second)
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", d/time.Minute, (d%time.Minute)/time.Second)
	default:
		return fmt.Sprintf("%dh%dm", d/time.Hour, (d%time.Hour)/time.Minute)
	}
}

// Size formats a size in bytes with SI units ("83 MB").
func Size(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
