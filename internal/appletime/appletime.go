// Package appletime converts message-store timestamps, which count
// nanoseconds since the Apple reference epoch (2001-01-01T00:00:00 UTC),
// into calendar times.
package appletime

import (
	"log/slog"
	"time"

	applog "fils/internal/log"
)

// EpochOffsetSeconds is the offset between the Unix epoch (1970-01-01)
// and the Apple reference epoch (2001-01-01).
const EpochOffsetSeconds = 978307200

// Convert interprets ns as nanoseconds since the reference epoch and
// returns the corresponding time. A zero input means "no date". If the
// primary interpretation lands outside the plausible range, the raw
// value is retried as milliseconds since the Unix epoch, an encoding
// some store versions used. Both failing yields (zero, false) with a
// diagnostic; a malformed timestamp is never an error.
func Convert(ns int64) (time.Time, bool) {
	if ns == 0 {
		return time.Time{}, false
	}

	t := time.Unix(ns/1e9+EpochOffsetSeconds, ns%1e9)
	if yearInRange(t, 2001, 2100) {
		return t, true
	}

	// Some store versions wrote a different unit; retry the raw value
	// as timestamp/1e6 seconds since the Unix epoch.
	t = time.UnixMicro(ns)
	if yearInRange(t, 1971, 2100) {
		return t, true
	}

	applog.ForComponent(slog.Default(), applog.ComponentAppletime).
		Warn("could not convert message timestamp", "timestamp", ns)
	return time.Time{}, false
}

// Threshold translates "the last days days" relative to now into the
// store's native timestamp unit, for bounding queries.
func Threshold(days int, now time.Time) int64 {
	cutoff := now.AddDate(0, 0, -days)
	return (cutoff.Unix() - EpochOffsetSeconds) * 1e9
}

func yearInRange(t time.Time, min, max int) bool {
	y := t.Year()
	return y >= min && y <= max
}
