package schedule

import (
	"testing"
	"time"
)

// 2026-09-02 is a Wednesday.
func wednesday(hour, minute int) time.Time {
	return time.Date(2026, 9, 2, hour, minute, 0, 0, time.UTC)
}

func TestNextWeeklyRun_SlotPassedToday(t *testing.T) {
	now := wednesday(10, 0)

	next, err := NextWeeklyRun(now, time.Wednesday, 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 9, 9, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected next Wednesday %v, got %v", want, next)
	}
}

func TestNextWeeklyRun_SlotLaterToday(t *testing.T) {
	now := wednesday(8, 0)

	next, err := NextWeeklyRun(now, time.Wednesday, 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected today %v, got %v", want, next)
	}
}

func TestNextWeeklyRun_ExactSlotRollsOver(t *testing.T) {
	now := wednesday(9, 0)

	next, err := NextWeeklyRun(now, time.Wednesday, 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 9, 9, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("now exactly at slot should roll a full week, got %v", next)
	}
}

func TestNextWeeklyRun_Properties(t *testing.T) {
	now := wednesday(14, 30)

	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, tc := range []struct{ hour, minute int }{
			{0, 0}, {2, 0}, {9, 15}, {14, 30}, {23, 59},
		} {
			next, err := NextWeeklyRun(now, day, tc.hour, tc.minute)
			if err != nil {
				t.Fatalf("day=%d %02d:%02d: %v", day, tc.hour, tc.minute, err)
			}
			if !next.After(now) {
				t.Errorf("day=%d %02d:%02d: result %v not strictly after now %v", day, tc.hour, tc.minute, next, now)
			}
			if next.Weekday() != day {
				t.Errorf("day=%d: result weekday %d", day, next.Weekday())
			}
			if next.Hour() != tc.hour || next.Minute() != tc.minute || next.Second() != 0 {
				t.Errorf("day=%d: result time %02d:%02d:%02d, want %02d:%02d:00",
					day, next.Hour(), next.Minute(), next.Second(), tc.hour, tc.minute)
			}
			if next.Sub(now) > 7*24*time.Hour {
				t.Errorf("day=%d: result %v more than a week out", day, next)
			}

			// Pure: same frozen now, same result.
			again, _ := NextWeeklyRun(now, day, tc.hour, tc.minute)
			if !again.Equal(next) {
				t.Errorf("day=%d: not deterministic: %v vs %v", day, next, again)
			}
		}
	}
}

func TestNextWeeklyRun_RejectsOutOfRange(t *testing.T) {
	now := wednesday(8, 0)

	cases := []struct {
		name   string
		day    time.Weekday
		hour   int
		minute int
	}{
		{"day too large", 7, 9, 0},
		{"negative day", -1, 9, 0},
		{"hour too large", time.Monday, 24, 0},
		{"negative hour", time.Monday, -1, 0},
		{"minute too large", time.Monday, 9, 60},
		{"negative minute", time.Monday, 9, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NextWeeklyRun(now, tc.day, tc.hour, tc.minute); err == nil {
				t.Errorf("expected error for day=%d hour=%d minute=%d", tc.day, tc.hour, tc.minute)
			}
		})
	}
}

func TestNextWeeklyRun_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	now := time.Date(2026, 9, 2, 8, 0, 0, 0, loc)

	next, err := NextWeeklyRun(now, time.Wednesday, 9, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Location() != loc {
		t.Errorf("expected result in caller's location, got %v", next.Location())
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(2, 5); got != "02:05" {
		t.Errorf("FormatClock(2,5) = %q", got)
	}
	if got := FormatClock(23, 59); got != "23:59" {
		t.Errorf("FormatClock(23,59) = %q", got)
	}
}

func TestWeekdayName_CanonicalOrdinals(t *testing.T) {
	if WeekdayName(0) != "Sunday" || WeekdayName(6) != "Saturday" {
		t.Error("weekday names must follow the 0=Sunday canonical ordering")
	}
}
