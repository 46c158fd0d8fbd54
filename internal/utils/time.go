package utils

import (
	"fmt"
	"strings"
	"time"
)

// OnTime is the literal Darwin uses in the estimated time field when a
// service is running to schedule.
const OnTime = "On time"

// rolloverThreshold is how far in the past a board time may be before it is
// read as tomorrow's occurrence rather than a departure that already left.
const rolloverThreshold = 12 * time.Hour

// ClampSeconds returns n, or 0 when n is negative.
func ClampSeconds(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// EffectiveDepartureTime picks the estimated time when the provider gave one,
// falling back to the scheduled time when the estimate is absent or "On time".
func EffectiveDepartureTime(scheduled, estimated string) string {
	estimated = strings.TrimSpace(estimated)
	if estimated == "" || estimated == OnTime {
		return strings.TrimSpace(scheduled)
	}
	return estimated
}

// ParseClockTime parses an "HH:MM" wall-clock time on the date of ref, in ref's location.
func ParseClockTime(hhmm string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", hhmm, err)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}

// SecondsUntilBoardTime returns the whole seconds from now until the board
// time hhmm. Times a little in the past clamp to 0; times more than twelve
// hours in the past are taken to be after midnight.
func SecondsUntilBoardTime(hhmm string, now time.Time) (int, error) {
	at, err := ParseClockTime(hhmm, now)
	if err != nil {
		return 0, err
	}

	diff := at.Sub(now)
	if diff < -rolloverThreshold {
		at = at.AddDate(0, 0, 1)
		diff = at.Sub(now)
	}
	if diff < 0 {
		return 0, nil
	}
	return int(diff / time.Second), nil
}
