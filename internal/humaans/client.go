// Package humaans is a client for the Humaans HR API, covering the reads
// and writes the reporting cycle and the clock need.
package humaans

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

// DefaultBaseURL is the production Humaans API host.
const DefaultBaseURL = "https://app.humaans.io"

const pageSize = 250

// Client is an authenticated Humaans API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client using a personal access token. An empty baseURL
// selects the production host; tests point it at a local server.
func NewClient(ctx context.Context, accessToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return &Client{
		httpClient: oauth2.NewClient(ctx, ts),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Person is the /api/me record, reduced to the fields the engine needs.
type Person struct {
	ID                string       `json:"id"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	RemoteCountryCode string       `json:"remoteCountryCode"`
	RemoteRegionCode  string       `json:"remoteRegionCode"`
	WorkingDays       []WorkingDay `json:"workingDays"`
}

// WorkingDay is one element of a person's working-days list.
type WorkingDay struct {
	Day string `json:"day"`
}

// FullName returns the person's display name.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays converts the working-days list into a weekday set. Unknown day
// names are skipped.
func (p Person) Weekdays() map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, len(p.WorkingDays))
	for _, wd := range p.WorkingDays {
		if d, ok := weekdayNames[strings.ToLower(wd.Day)]; ok {
			days[d] = true
		}
	}
	return days
}

// HolidayCalendars returns the public-holiday calendar ids that apply to the
// person: the country calendar and, when a region is set, the country-region
// calendar.
func (p Person) HolidayCalendars() []string {
	if p.RemoteCountryCode == "" {
		return nil
	}
	cals := []string{p.RemoteCountryCode}
	if p.RemoteRegionCode != "" {
		cals = append(cals, p.RemoteCountryCode+"-"+p.RemoteRegionCode)
	}
	return cals
}

// TimeAwayDay is one day of a time-away record's breakdown.
type TimeAwayDay struct {
	Date   string `json:"date"`
	Period string `json:"period"` // "full" or "half"
}

type timesheetPage struct {
	Total int                    `json:"total"`
	Skip  int                    `json:"skip"`
	Data  []model.TimesheetEntry `json:"data"`
}

type jobRolesPage struct {
	Data []struct {
		JobTitle string `json:"jobTitle"`
	} `json:"data"`
}

type holidaysPage struct {
	Data []struct {
		Date string `json:"date"`
	} `json:"data"`
}

type timeAwayPage struct {
	Data []struct {
		Breakdown []TimeAwayDay `json:"breakdown"`
	} `json:"data"`
}

// Me fetches the authenticated person.
func (c *Client) Me(ctx context.Context) (Person, error) {
	var p Person
	if err := c.get(ctx, "/api/me", nil, &p); err != nil {
		return Person{}, err
	}
	return p, nil
}

// JobTitle fetches the person's current job title; empty when no role exists.
func (c *Client) JobTitle(ctx context.Context, personID string) (string, error) {
	q := url.Values{}
	q.Set("personId", personID)
	var page jobRolesPage
	if err := c.get(ctx, "/api/job-roles", q, &page); err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return "", nil
	}
	return page.Data[0].JobTitle, nil
}

// TimesheetEntries fetches all timesheet entries in [from, to] inclusive,
// following $skip pagination until the reported total is reached.
func (c *Client) TimesheetEntries(ctx context.Context, personID string, from, to time.Time) ([]model.TimesheetEntry, error) {
	var all []model.TimesheetEntry
	skip := 0
	for {
		q := url.Values{}
		q.Set("personId", personID)
		q.Set("date[$gte]", timecalc.DateKey(from))
		q.Set("date[$lte]", timecalc.DateKey(to))
		q.Set("$limit", strconv.Itoa(pageSize))
		q.Set("$skip", strconv.Itoa(skip))

		var page timesheetPage
		if err := c.get(ctx, "/api/timesheet-entries", q, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if len(page.Data) == 0 || page.Skip+len(page.Data) >= page.Total {
			return all, nil
		}
		skip += pageSize
	}
}

// EntriesForDay fetches the timesheet entries of a single calendar day.
func (c *Client) EntriesForDay(ctx context.Context, personID string, day time.Time) ([]model.TimesheetEntry, error) {
	q := url.Values{}
	q.Set("personId", personID)
	q.Set("date", timecalc.DateKey(day))
	var page timesheetPage
	if err := c.get(ctx, "/api/timesheet-entries", q, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// TimeAway fetches time-away records overlapping [from, to] and flattens
// their per-day breakdowns into full-day and half-day marker sets.
func (c *Client) TimeAway(ctx context.Context, personID string, from, to time.Time) (full, half map[string]bool, err error) {
	q := url.Values{}
	q.Set("personId", personID)
	q.Set("startDate[$gte]", timecalc.DateKey(from))
	q.Set("startDate[$lte]", timecalc.DateKey(to))
	q.Set("$or.endDate[$gte]", timecalc.DateKey(from))
	q.Set("$or.endDate[$lte]", timecalc.DateKey(to))
	q.Set("$limit", strconv.Itoa(pageSize))

	var page timeAwayPage
	if err := c.get(ctx, "/api/time-away", q, &page); err != nil {
		return nil, nil, err
	}
	full = map[string]bool{}
	half = map[string]bool{}
	for _, record := range page.Data {
		for _, d := range record.Breakdown {
			if d.Period == "full" {
				full[d.Date] = true
			} else {
				half[d.Date] = true
			}
		}
	}
	return full, half, nil
}

// PublicHolidays fetches the holiday dates of one calendar in [from, to].
func (c *Client) PublicHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]string, error) {
	q := url.Values{}
	q.Set("publicHolidayCalendarId", calendarID)
	q.Set("date[$gte]", timecalc.DateKey(from))
	q.Set("date[$lte]", timecalc.DateKey(to))
	q.Set("$limit", strconv.Itoa(pageSize))

	var page holidaysPage
	if err := c.get(ctx, "/api/public-holidays", q, &page); err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(page.Data))
	for _, h := range page.Data {
		dates = append(dates, h.Date)
	}
	return dates, nil
}

// CreateEntry opens a new timesheet entry starting now (clock-in).
func (c *Client) CreateEntry(ctx context.Context, personID string, at time.Time) (model.TimesheetEntry, error) {
	payload := map[string]string{
		"personId":  personID,
		"date":      timecalc.DateKey(at),
		"startTime": timecalc.ClockTime(at),
	}
	var entry model.TimesheetEntry
	if err := c.do(ctx, http.MethodPost, "/api/timesheet-entries", nil, payload, &entry); err != nil {
		return model.TimesheetEntry{}, err
	}
	return entry, nil
}

// CloseEntry sets the end time of an open timesheet entry (clock-out).
func (c *Client) CloseEntry(ctx context.Context, entryID string, at time.Time) (model.TimesheetEntry, error) {
	payload := map[string]string{
		"endTime": timecalc.ClockTime(at),
	}
	var entry model.TimesheetEntry
	if err := c.do(ctx, http.MethodPatch, "/api/timesheet-entries/"+entryID, nil, payload, &entry); err != nil {
		return model.TimesheetEntry{}, err
	}
	return entry, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// do sends one API request with a correlation id and decodes the response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("humaans API request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("humaans API call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("humaans API error %d on %s %s: %s", resp.StatusCode, method, path, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding humaans response: %w", err)
		}
	}
	return nil
}
