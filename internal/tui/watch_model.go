// Package tui renders the live status watch.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

// WatchModel is the TUI model for "status --watch": a ticking view of the
// open session and today's progress.
type WatchModel struct {
	width  int
	height int

	personName string
	jobTitle   string
	session    model.ClockSession
	day        model.PeriodReport

	startedAt time.Time // zero when not clocked in
	elapsed   time.Duration
}

// watchTickMsg is sent every second to update the clock.
type watchTickMsg struct{}

// NewWatchModel creates the watch model. The session's clock-in time is
// anchored to today's date to compute the running duration.
func NewWatchModel(personName, jobTitle string, session model.ClockSession, day model.PeriodReport, now time.Time) WatchModel {
	m := WatchModel{
		personName: personName,
		jobTitle:   jobTitle,
		session:    session,
		day:        day,
	}
	if session.OpenEntryID != "" {
		if h, min, err := timecalc.ParseClock(session.ClockedInAt); err == nil {
			start := timecalc.StartOfDay(now).Add(time.Duration(h)*time.Hour + time.Duration(min)*time.Minute)
			m.startedAt = start
			m.elapsed = now.Sub(start)
		}
	}
	return m
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

// Init starts the ticker.
func (m WatchModel) Init() tea.Cmd {
	return watchTick()
}

// Update handles tick, resize and key messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		if !m.startedAt.IsZero() {
			m.elapsed = time.Since(m.startedAt)
		}
		return m, watchTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the watch.
func (m WatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string

	clockedIn := !m.startedAt.IsZero()
	stateText := "CLOCKED OUT"
	stateColor := ColorWarning
	if clockedIn {
		stateText = "CLOCKED IN"
		stateColor = ColorSuccess
	}
	stateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(stateColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, stateStyle.Render(stateText))

	who := m.personName
	if m.jobTitle != "" {
		who += " · " + m.jobTitle
	}
	whoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, whoStyle.Render(who))

	if clockedIn {
		clockStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Bold(true).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, clockStyle.Render(formatElapsed(m.elapsed)))

		sinceStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, sinceStyle.Render("since "+m.session.ClockedInAt))
	} else if m.session.ClockedOutAt != "" {
		outStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Align(lipgloss.Center).
			Width(m.width)
		components = append(components, outStyle.Render("last clock-out at "+m.session.ClockedOutAt))
	}

	progress := fmt.Sprintf("today: %s / %s worked",
		timecalc.FormatSignedHM(m.day.HoursWorked, m.day.MinutesWorked),
		timecalc.FormatHours(m.day.HoursNeeded))
	if !math.IsInf(m.day.PercentWorked, 0) {
		progress += fmt.Sprintf(" (%.1f%%)", m.day.PercentWorked)
	}
	progressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, progressStyle.Render(progress))

	content := strings.Join(components, "\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	helpBar := helpStyle.Render("q/esc quit")

	panelStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Align(lipgloss.Center, lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panelStyle.Render(content),
		helpBar,
	)
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// RunWatch runs the live status view until the user quits.
func RunWatch(personName, jobTitle string, session model.ClockSession, day model.PeriodReport, now time.Time) error {
	p := tea.NewProgram(NewWatchModel(personName, jobTitle, session, day, now), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
