package timecalc

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-day key format used throughout.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used by timesheet entries.
	ClockLayout = "15:04:05"
)

// DateKey returns the calendar-day key for t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockTime returns the time-of-day string for t.
func ClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseClock parses a time-of-day string ("15:04:05" or "15:04") into its
// hour and minute components.
func ParseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h, m, nil
}

// SinceClock returns the whole hours and minutes elapsed between a start
// time-of-day and now, borrowing an hour when the minutes remainder is
// negative. Seconds are ignored on both sides.
func SinceClock(start string, now time.Time) (int, int, error) {
	h, m, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	hours := now.Hour() - h
	minutes := now.Minute() - m
	if minutes < 0 {
		hours--
		minutes += 60
	}
	return hours, minutes, nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekRange returns the Monday and Sunday of the week containing t, both
// midnight-normalized so they bound an inclusive day range.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	back := (int(t.Weekday()) + 6) % 7
	monday := StartOfDay(t.AddDate(0, 0, -back))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthRange returns the first and last calendar day of t's month. The last
// day is "day 0 of next month".
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
	return first, last
}

// YearStart returns January 1 of t's year.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// Days yields every calendar day in [from, to] inclusive, midnight-normalized.
// An inverted range yields nothing. The sequence is restartable.
func Days(from, to time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := StartOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// FormatSignedHM formats an hours/minutes pair as "H:MM" with a single
// leading minus when either component is negative.
func FormatSignedHM(hours, minutes int) string {
	sign := ""
	if hours < 0 || minutes < 0 {
		sign = "-"
	}
	if hours < 0 {
		hours = -hours
	}
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, hours, minutes)
}

// FormatHours renders a needed-hours total without trailing zeros (8, 7.5).
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
