// Package shared provides common types and utilities for mode controllers.
package shared

import (
	"fmt"
	"time"
)

// Clock provides the current time. Use RealClock for production
// and FixedClock for testing.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// FormatExpiry describes when expiresAt falls relative to now, e.g.
// "expires in 3h", "expired 5m ago". A zero expiresAt reads "no expiry".
func FormatExpiry(expiresAt, now time.Time) string {
	if expiresAt.IsZero() {
		return "no expiry"
	}
	d := expiresAt.Sub(now)
	if d < 0 {
		return "expired " + compact(-d) + " ago"
	}
	return "expires in " + compact(d)
}

// compact renders d with its largest whole unit: 45s, 5m, 3h, 2d.
func compact(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
