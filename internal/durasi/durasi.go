// Package durasi computes and formats parking durations.
package durasi

import (
	"fmt"
	"time"
)

// Minutes returns the elapsed time between entry and exit, rounded down to
// whole minutes. Negative intervals clamp to zero.
func Minutes(entry, exit time.Time) int {
	d := exit.Sub(entry)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// Format renders the elapsed time for display: "4 jam 45 menit" when at
// least an hour has passed, "30 menit" otherwise.
func Format(entry, exit time.Time) string {
	total := Minutes(entry, exit)
	hours := total / 60
	minutes := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d jam %d menit", hours, minutes)
	}
	return fmt.Sprintf("%d menit", minutes)
}
