// Package engine computes needed versus worked hours over calendar periods,
// carrying unresolved overtime forward across period boundaries.
package engine

import (
	"time"

	"github.com/worktally/internal/timecalc"
)

// Context is the immutable input of one reporting cycle: a captured "now",
// the daily-hours target and the day-classification sets. All classification
// and aggregation for a cycle reads the same Context so results stay
// consistent and tests can inject a fixed timestamp.
type Context struct {
	Now             time.Time
	DailyHours      float64
	Holidays        map[string]bool
	WorkingWeekdays map[time.Weekday]bool
	FullDaysAway    map[string]bool
	HalfDaysAway    map[string]bool
}

// RateFor classifies a calendar day into the fraction of the daily target
// owed on it. The first matching rule wins:
//
//  1. holiday                          -> 0
//  2. weekday not a working day        -> 0
//  3. full-day time away               -> 0
//  4. half-day time away               -> 0.5 if the day is not in the future
//  5. otherwise                        -> 1 if the day is not in the future
//
// Future days owe nothing, so a period extending past today excludes
// not-yet-elapsed days without the caller clipping the range.
func (c *Context) RateFor(day time.Time) float64 {
	key := timecalc.DateKey(day)
	switch {
	case c.Holidays[key]:
		return 0
	case !c.WorkingWeekdays[day.Weekday()]:
		return 0
	case c.FullDaysAway[key]:
		return 0
	case c.HalfDaysAway[key]:
		if !day.After(c.Now) {
			return 0.5
		}
		return 0
	default:
		if !day.After(c.Now) {
			return 1
		}
		return 0
	}
}
