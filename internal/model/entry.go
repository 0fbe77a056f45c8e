package model

import (
	"encoding/json"
	"math"
	"time"
)

// HoursMinutes is a signed pair of hours and minutes. Used both for explicit
// entry durations reported by the HR service and for overtime balances,
// where negative values represent hour debt.
type HoursMinutes struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// TimesheetEntry is a single timesheet record as stored by the HR service.
// Dates are calendar-day keys ("2006-01-02"), times are times of day
// ("15:04:05"). A nil EndTime means the session is still open. Duration is
// set by the service once an entry has been closed.
type TimesheetEntry struct {
	ID        string        `json:"id"`
	PersonID  string        `json:"personId,omitempty"`
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   *string       `json:"endTime"`
	Duration  *HoursMinutes `json:"duration"`
}

// Open reports whether the entry has no end time yet.
func (e TimesheetEntry) Open() bool {
	return e.EndTime == nil
}

// Period is an inclusive [Start, End] calendar-day range. Both bounds are
// midnight-normalized.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodReport is the output of one aggregation pass over a period.
// OvertimeHours/OvertimeMinutes echo the carry that was folded into the
// worked totals; they are not recomputed by the aggregation itself.
type PeriodReport struct {
	HoursWorked     int     `json:"hoursWorked"`
	MinutesWorked   int     `json:"minutesWorked"`
	HoursNeeded     float64 `json:"hoursNeeded"`
	PercentWorked   float64 `json:"percentWorked"`
	OvertimeHours   int     `json:"overtimeHours"`
	OvertimeMinutes int     `json:"overtimeMinutes"`
}

// periodReportWire mirrors PeriodReport with a nullable percent. The worked
// ratio is infinite when no hours are needed, and JSON has no encoding for a
// non-finite number.
type periodReportWire struct {
	HoursWorked     int      `json:"hoursWorked"`
	MinutesWorked   int      `json:"minutesWorked"`
	HoursNeeded     float64  `json:"hoursNeeded"`
	PercentWorked   *float64 `json:"percentWorked"`
	OvertimeHours   int      `json:"overtimeHours"`
	OvertimeMinutes int      `json:"overtimeMinutes"`
}

// MarshalJSON encodes a non-finite percent as null.
func (r PeriodReport) MarshalJSON() ([]byte, error) {
	w := periodReportWire{
		HoursWorked:     r.HoursWorked,
		MinutesWorked:   r.MinutesWorked,
		HoursNeeded:     r.HoursNeeded,
		OvertimeHours:   r.OvertimeHours,
		OvertimeMinutes: r.OvertimeMinutes,
	}
	if !math.IsInf(r.PercentWorked, 0) && !math.IsNaN(r.PercentWorked) {
		p := r.PercentWorked
		w.PercentWorked = &p
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores a null percent to the infinity matching the sign of
// the worked total.
func (r *PeriodReport) UnmarshalJSON(data []byte) error {
	var w periodReportWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = PeriodReport{
		HoursWorked:     w.HoursWorked,
		MinutesWorked:   w.MinutesWorked,
		HoursNeeded:     w.HoursNeeded,
		OvertimeHours:   w.OvertimeHours,
		OvertimeMinutes: w.OvertimeMinutes,
	}
	if w.PercentWorked != nil {
		r.PercentWorked = *w.PercentWorked
	} else if w.HoursWorked*60+w.MinutesWorked < 0 {
		r.PercentWorked = math.Inf(-1)
	} else {
		r.PercentWorked = math.Inf(1)
	}
	return nil
}

// ClockSession is the persisted clock state. At most one session is open at
// any time: OpenEntryID and ClockedInAt are set together while a session is
// open, ClockedOutAt holds the last known clock-out once no session is open.
type ClockSession struct {
	OpenEntryID  string `json:"open_entry_id,omitempty"`
	ClockedInAt  string `json:"clocked_in_at,omitempty"`
	ClockedOutAt string `json:"clocked_out_at,omitempty"`
}
