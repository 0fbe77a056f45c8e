// Package clock tracks whether a work session is currently open.
package clock

import (
	"errors"
	"time"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

var (
	// ErrAlreadyClockedIn is returned by ClockIn while a session is open.
	ErrAlreadyClockedIn = errors.New("a session is already clocked in")
	// ErrNotClockedIn is returned by ClockOut while no session is open.
	ErrNotClockedIn = errors.New("no session is clocked in")
)

// Tracker is the finite-state record of the clock: either CLOSED (no open
// session, last clock-out optionally remembered for display) or OPEN (a
// session active since a recorded time, referencing the open entry). It is
// the single source of truth for whether "today" has an open entry.
type Tracker struct {
	session model.ClockSession
}

// Restore rebuilds a Tracker from a persisted session record.
func Restore(s model.ClockSession) *Tracker {
	return &Tracker{session: s}
}

// FromEntries derives the clock state from today's fetched timesheet. An
// open entry wins and records its id and start time; otherwise the latest
// end time among closed entries is remembered as the last clock-out.
func FromEntries(today []model.TimesheetEntry) *Tracker {
	t := &Tracker{}
	for _, e := range today {
		if e.Open() {
			t.session.OpenEntryID = e.ID
			t.session.ClockedInAt = e.StartTime
		} else if e.EndTime != nil && (t.session.ClockedOutAt == "" || t.session.ClockedOutAt < *e.EndTime) {
			t.session.ClockedOutAt = *e.EndTime
		}
	}
	return t
}

// Open reports whether a session is currently clocked in.
func (t *Tracker) Open() bool {
	return t.session.OpenEntryID != ""
}

// Session returns the current session record.
func (t *Tracker) Session() model.ClockSession {
	return t.session
}

// ClockIn opens a session for the given entry, valid only while closed.
func (t *Tracker) ClockIn(entryID string, at time.Time) error {
	if t.Open() {
		return ErrAlreadyClockedIn
	}
	t.session.OpenEntryID = entryID
	t.session.ClockedInAt = timecalc.ClockTime(at)
	t.session.ClockedOutAt = ""
	return nil
}

// ClockOut closes the open session and returns the entry id that was open.
// The end time is remembered for display; the start time moves to the
// closed entry's history.
func (t *Tracker) ClockOut(at time.Time) (string, error) {
	if !t.Open() {
		return "", ErrNotClockedIn
	}
	id := t.session.OpenEntryID
	t.session.OpenEntryID = ""
	t.session.ClockedInAt = ""
	t.session.ClockedOutAt = timecalc.ClockTime(at)
	return id, nil
}
