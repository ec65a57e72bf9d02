// Package schedule computes retraining fire times from recurrence specs.
// Weekday numbering follows time.Weekday everywhere: 0=Sunday .. 6=Saturday.
package schedule

import (
	"fmt"
	"time"
)

// NextWeeklyRun returns the next instant strictly after now at which a weekly
// job with the given (day, hour, minute) spec should fire, in now's location.
// It rejects out-of-range specs instead of wrapping them.
func NextWeeklyRun(now time.Time, day time.Weekday, hour, minute int) (time.Time, error) {
	if day < time.Sunday || day > time.Saturday {
		return time.Time{}, fmt.Errorf("invalid weekday %d: must be 0..6", day)
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour %d: must be 0..23", hour)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute %d: must be 0..59", minute)
	}

	deltaDays := (int(day) - int(now.Weekday()) + 7) % 7
	if deltaDays == 0 {
		// Same weekday: if today's slot already passed (or is right now),
		// roll to next week.
		if now.Hour() > hour || (now.Hour() == hour && now.Minute() >= minute) {
			deltaDays = 7
		}
	}

	year, month, dayOfMonth := now.AddDate(0, 0, deltaDays).Date()
	return time.Date(year, month, dayOfMonth, hour, minute, 0, 0, now.Location()), nil
}

// WeekdayName returns the display name for a canonical weekday ordinal.
func WeekdayName(day time.Weekday) string {
	return day.String()
}

// FormatClock renders an (hour, minute) pair as HH:MM for display.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
